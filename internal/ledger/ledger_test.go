package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pupbiru/humanitix-auto-codes/internal/ledger"
)

func TestFingerprintPolicy(t *testing.T) {
	policy := ledger.FingerprintPolicy{}
	markerA := policy.Marker([]string{"CODE1", "CODE2"})
	markerB := policy.Marker([]string{"CODE1", "CODE3"})

	assert.NotEqual(t, markerA, markerB)

	// First-time: nothing stored.
	assert.True(t, policy.ShouldUpload("", markerA))
	// Same code list recorded: skip.
	assert.False(t, policy.ShouldUpload(markerA, markerA))
	// Rotated code list: upload again.
	assert.True(t, policy.ShouldUpload(markerA, markerB))
}

func TestFingerprintDeterministic(t *testing.T) {
	codes := []string{"VIP-1", "VIP-2"}
	assert.Equal(t, ledger.Fingerprint(codes), ledger.Fingerprint(codes))
	// Joining is positional, so order matters.
	assert.NotEqual(t, ledger.Fingerprint([]string{"a", "b"}), ledger.Fingerprint([]string{"b", "a"}))
}

func TestBooleanPolicy(t *testing.T) {
	policy := ledger.BooleanPolicy{}
	marker := policy.Marker([]string{"CODE1"})

	assert.True(t, policy.ShouldUpload("", marker))
	// Once recorded, never again, even if the code list changed.
	assert.False(t, policy.ShouldUpload(marker, policy.Marker([]string{"OTHER"})))
}

func TestPolicyFor(t *testing.T) {
	policy, err := ledger.PolicyFor("boolean")
	assert.NoError(t, err)
	assert.IsType(t, ledger.BooleanPolicy{}, policy)

	policy, err = ledger.PolicyFor("fingerprint")
	assert.NoError(t, err)
	assert.IsType(t, ledger.FingerprintPolicy{}, policy)

	_, err = ledger.PolicyFor("timestamp")
	assert.Error(t, err)
}
