package models

import "encoding/json"

// MatchRule is one organizer-configured event name rule. In the settings file
// a rule is either a bare string (literal case-insensitive prefix match) or an
// object {"pattern": ..., "flags": [...]} (regular expression anchored at the
// start of the name).
type MatchRule struct {
	Prefix  string
	Pattern string
	Flags   []string
}

// IsRegex reports whether the rule is a pattern rule rather than a prefix rule.
func (r MatchRule) IsRegex() bool {
	return r.Pattern != ""
}

func (r *MatchRule) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var prefix string
		if err := json.Unmarshal(data, &prefix); err != nil {
			return err
		}
		*r = MatchRule{Prefix: prefix}
		return nil
	}

	var obj struct {
		Pattern string   `json:"pattern"`
		Flags   []string `json:"flags"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = MatchRule{Pattern: obj.Pattern, Flags: obj.Flags}
	return nil
}

func (r MatchRule) MarshalJSON() ([]byte, error) {
	if !r.IsRegex() {
		return json.Marshal(r.Prefix)
	}
	return json.Marshal(struct {
		Pattern string   `json:"pattern"`
		Flags   []string `json:"flags,omitempty"`
	}{Pattern: r.Pattern, Flags: r.Flags})
}
