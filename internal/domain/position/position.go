// Package position defines the six on-pitch roles the market knows about.
package position

import "github.com/tcorrea/cartoart/internal/domain/text"

// Code identifies one of the six roster positions. The zero value is
// Unknown and is never indexed.
type Code int

const (
	Unknown Code = iota
	Coach
	Keeper
	Fullback
	CentreBack
	Midfielder
	Forward
)

// String returns the short roster code (TEC, GOL, LAT, ZAG, MEI, ATA).
func (c Code) String() string {
	switch c {
	case Coach:
		return "TEC"
	case Keeper:
		return "GOL"
	case Fullback:
		return "LAT"
	case CentreBack:
		return "ZAG"
	case Midfielder:
		return "MEI"
	case Forward:
		return "ATA"
	default:
		return "?"
	}
}

// codes maps normalized roster codes to their Code.
var codes = map[string]Code{
	"tec": Coach,
	"gol": Keeper,
	"lat": Fullback,
	"zag": CentreBack,
	"mei": Midfielder,
	"ata": Forward,
}

// labels maps normalized textual labels, as seen in fallback market
// datasets that carry a position name instead of a numeric id.
var labels = map[string]Code{
	"tecnico":  Coach,
	"goleiro":  Keeper,
	"lateral":  Fullback,
	"zagueiro": CentreBack,
	"meia":     Midfielder,
	"atacante": Forward,
}

// Parse maps a raw roster code (e.g. "GOL", "ata", "Téc") to its Code.
// Returns (Unknown, false) for anything outside the six known codes.
func Parse(raw string) (Code, bool) {
	c, ok := codes[text.Normalize(raw)]
	return c, ok
}

// FromLabel maps a textual position label (e.g. "Goleiro") to its Code.
func FromLabel(label string) (Code, bool) {
	c, ok := labels[text.Normalize(label)]
	return c, ok
}

// FromFeedID maps the market feed's numeric position id to its Code.
func FromFeedID(id int) (Code, bool) {
	switch id {
	case 1:
		return Keeper, true
	case 2:
		return Fullback, true
	case 3:
		return CentreBack, true
	case 4:
		return Midfielder, true
	case 5:
		return Forward, true
	case 6:
		return Coach, true
	default:
		return Unknown, false
	}
}

// All lists the six codes in the order they are rendered.
func All() []Code {
	return []Code{Coach, Keeper, Fullback, CentreBack, Midfielder, Forward}
}
