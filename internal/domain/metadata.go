package domain

import "strings"

// MIDIMetadata is the off-chain metadata document of a midi token
type MIDIMetadata struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Properties  MIDIProperties `json:"properties"`

	// Raw is the document as served, kept for storage and hashing
	Raw []byte `json:"-"`
}

// MIDIProperties holds the structured properties of a midi token
type MIDIProperties struct {
	Devices []DeviceRef `json:"devices,omitempty"`
	Tags    []string    `json:"tags"`
	Entries []MIDIEntry `json:"entries"`
}

// DeviceRef names a hardware device a midi pack targets
type DeviceRef struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
}

// MIDIEntry is a single midi file within a pack
type MIDIEntry struct {
	Name  string   `json:"name"`
	MIDI  string   `json:"midi"`
	Image *string  `json:"image,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// HasDevices reports whether the metadata declares at least one device
func (m *MIDIMetadata) HasDevices() bool {
	return len(m.Properties.Devices) > 0
}

// DerivedTags returns the upper-cased, trimmed tags of the pack and its entries.
// Empty values are dropped and duplicates are collapsed keeping first-seen order.
func (m *MIDIMetadata) DerivedTags() []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)

	add := func(values []string) {
		for _, v := range values {
			tag := strings.ToUpper(strings.TrimSpace(v))
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	add(m.Properties.Tags)
	for _, entry := range m.Properties.Entries {
		add(entry.Tags)
	}

	return tags
}

// NormalizeDeviceKey returns the normalized natural key of a device
func NormalizeDeviceKey(name, manufacturer string) (string, string) {
	return strings.ToLower(strings.TrimSpace(name)), strings.ToLower(strings.TrimSpace(manufacturer))
}
