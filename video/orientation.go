package video

import "fmt"

// Orientation is a video direction. The eight canonical values are ordered
// as in the host framework; Auto and Custom are property sentinels.
type Orientation int

const (
	OrientationIdentity Orientation = iota
	Orientation90R
	Orientation180
	Orientation90L
	OrientationHoriz
	OrientationVert
	OrientationULLR
	OrientationURLL
	OrientationAuto
	OrientationCustom
)

var orientationNicks = [...]string{
	"identity", "90r", "180", "90l", "horiz", "vert", "ul-lr", "ur-ll", "auto", "custom",
}

// String returns the property nick.
func (o Orientation) String() string {
	if o >= 0 && int(o) < len(orientationNicks) {
		return orientationNicks[o]
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation maps a property nick to an Orientation.
func ParseOrientation(nick string) (Orientation, error) {
	for i, n := range orientationNicks {
		if n == nick {
			return Orientation(i), nil
		}
	}
	return OrientationIdentity, fmt.Errorf("unknown video direction %q", nick)
}

// SwapsDimensions reports whether the direction exchanges width and height.
func (o Orientation) SwapsDimensions() bool {
	switch o {
	case Orientation90R, Orientation90L, OrientationULLR, OrientationURLL:
		return true
	default:
		return false
	}
}

// IsCanonical reports whether o is one of the eight concrete directions.
func (o Orientation) IsCanonical() bool {
	return o >= OrientationIdentity && o <= OrientationURLL
}
