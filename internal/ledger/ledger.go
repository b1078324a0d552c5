package ledger

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// Marker summarizes what was last uploaded for an event. Its meaning depends
// on the active policy: a fixed token for the boolean policy, a content hash
// of the code list for the fingerprint policy. An empty Marker means the
// event has never been recorded.
type Marker string

// Store persists the event -> marker mapping. Implementations must write
// through synchronously: once Set returns, a crash loses nothing.
type Store interface {
	Get(ctx context.Context, eventID string) (Marker, error)
	Set(ctx context.Context, eventID string, marker Marker) error
}

// Policy decides whether an event's codes need uploading given what the
// ledger recorded last time.
type Policy interface {
	// Marker computes the marker a successful upload of codes would record.
	Marker(codes []string) Marker
	// ShouldUpload reports whether an upload is due. stored is empty when the
	// event has never been recorded.
	ShouldUpload(stored, current Marker) bool
}

// BooleanPolicy uploads once per event, ever. Use it when the code list never
// changes for the lifetime of an event.
type BooleanPolicy struct{}

func (BooleanPolicy) Marker(codes []string) Marker { return "uploaded" }

func (BooleanPolicy) ShouldUpload(stored, current Marker) bool { return stored == "" }

// FingerprintPolicy uploads whenever the recorded fingerprint differs from
// the current code list's, so rotating the code list redistributes it to
// every matching event on the next run.
type FingerprintPolicy struct{}

func (FingerprintPolicy) Marker(codes []string) Marker { return Fingerprint(codes) }

func (FingerprintPolicy) ShouldUpload(stored, current Marker) bool { return stored != current }

// Fingerprint is the md5 hex digest over the NUL-joined code list. The exact
// construction is load-bearing: state files written by earlier deployments
// hold these values and must stay valid.
func Fingerprint(codes []string) Marker {
	sum := md5.Sum([]byte(strings.Join(codes, "\x00")))
	return Marker(hex.EncodeToString(sum[:]))
}

// PolicyFor resolves a configured policy name.
func PolicyFor(name string) (Policy, error) {
	switch name {
	case "boolean":
		return BooleanPolicy{}, nil
	case "fingerprint":
		return FingerprintPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown ledger policy %q (want boolean or fingerprint)", name)
	}
}
