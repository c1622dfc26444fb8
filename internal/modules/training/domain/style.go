package domain

import (
	"fmt"
	"strings"
)

// Style is the persisted key of a training style. The keys are the ones the
// log has always been written with, so old blobs keep loading.
type Style string

const (
	StyleClassic   Style = "Klassiskt"
	StyleSkate     Style = "Skejt"
	StyleRollerSki Style = "Rullskidor"
	StyleMachine   Style = "Stakmaskin"
)

// StyleInfo describes one member of the closed style set.
type StyleInfo struct {
	Style Style
	Label string
	Color string
	// TracksClimb is false for styles where climb means nothing; their climb
	// is stored as zero and left out of every stifa computation.
	TracksClimb bool
	aliases     []string
}

var styles = []StyleInfo{
	{Style: StyleClassic, Label: "Classic", Color: "#1f6bff", TracksClimb: true, aliases: []string{"classic"}},
	{Style: StyleSkate, Label: "Skate", Color: "#21a559", TracksClimb: true, aliases: []string{"skate"}},
	{Style: StyleRollerSki, Label: "Roller-ski", Color: "#d83b3b", TracksClimb: true, aliases: []string{"roller", "roller-ski", "rollerski"}},
	{Style: StyleMachine, Label: "Double-pole machine", Color: "#e0bd00", TracksClimb: false, aliases: []string{"machine", "skierg"}},
}

// Styles returns the fixed style set in display order.
func Styles() []StyleInfo {
	out := make([]StyleInfo, len(styles))
	copy(out, styles)
	return out
}

func (s Style) Info() (StyleInfo, bool) {
	for _, info := range styles {
		if info.Style == s {
			return info, true
		}
	}
	return StyleInfo{}, false
}

func (s Style) TracksClimb() bool {
	info, ok := s.Info()
	return ok && info.TracksClimb
}

func (s Style) Validate() error {
	if _, ok := s.Info(); !ok {
		return fmt.Errorf("unsupported style %q", string(s))
	}
	return nil
}

// ParseStyle accepts a persisted key or an English alias, ignoring case.
func ParseStyle(raw string) (Style, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, info := range styles {
		if strings.ToLower(string(info.Style)) == needle || strings.ToLower(info.Label) == needle {
			return info.Style, nil
		}
		for _, alias := range info.aliases {
			if alias == needle {
				return info.Style, nil
			}
		}
	}
	return "", fmt.Errorf("unsupported style %q", raw)
}
