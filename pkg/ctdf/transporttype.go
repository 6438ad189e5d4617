package ctdf

import "fmt"

type TransportMode int

//goland:noinspection GoUnusedConst
const (
	TransportModeUnknown TransportMode = iota
	TransportModeRail
	TransportModeLongDistanceRail
	TransportModeRoad
	TransportModeTram
	TransportModeSubway
	TransportModeWalking
)

// TransportModeFromCategoryCode maps a ResRobot product catCode onto a mode
func TransportModeFromCategoryCode(code string) TransportMode {
	switch code {
	case "1":
		return TransportModeLongDistanceRail
	case "3", "4":
		return TransportModeRail
	case "2", "7":
		return TransportModeRoad
	case "5":
		return TransportModeSubway
	case "6":
		return TransportModeTram
	default:
		return TransportModeUnknown
	}
}

func (m TransportMode) String() string {
	switch m {
	case TransportModeUnknown:
		return "unknown"
	case TransportModeRail:
		return "rail"
	case TransportModeLongDistanceRail:
		return "long-distance-rail"
	case TransportModeRoad:
		return "road"
	case TransportModeTram:
		return "tram"
	case TransportModeSubway:
		return "subway"
	case TransportModeWalking:
		return "walking"
	default:
		panic(fmt.Sprintf("unhandled transport mode %d", int(m)))
	}
}

func (m TransportMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Icon is the emoji shown next to a line in the sidebar
func (m TransportMode) Icon() string {
	switch m {
	case TransportModeRail, TransportModeLongDistanceRail:
		return "🚆"
	case TransportModeTram:
		return "🚊"
	case TransportModeSubway:
		return "🚇"
	case TransportModeWalking, TransportModeUnknown:
		return "🚶"
	case TransportModeRoad:
		return "🚍"
	default:
		panic(fmt.Sprintf("unhandled transport mode %d", int(m)))
	}
}
