package localstops

import (
	"context"
	"errors"
	"reflect"

	"github.com/Zandri2k/Travel-Planner/pkg/ctdf"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/query"
	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/source"
	"github.com/Zandri2k/Travel-Planner/pkg/stopdirectory"
)

// Source answers stop queries from the stop directory loaded at startup.
// A Fallback source is registered after ResRobot and only answers the nearby
// stop queries ResRobot could not.
type Source struct {
	Directory *stopdirectory.Directory
	Fallback  bool
}

func (s Source) GetName() string {
	if s.Fallback {
		return "Local Stop Directory (fallback)"
	}
	return "Local Stop Directory"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Stop{}),
		reflect.TypeOf([]*ctdf.Stop{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	if s.Fallback {
		if q, ok := q.(query.NearbyStops); ok {
			return s.Directory.Nearest(q.Location, q.Count), nil
		}
		return nil, source.UnsupportedSourceError
	}

	switch q := q.(type) {
	case query.Stop:
		return s.stopQuery(q)
	case query.StopSearch:
		return s.Directory.Search(q.Term, q.Limit), nil
	case query.StopsWithinRadius:
		return s.Directory.WithinRadius(q.Center, q.RadiusKm), nil
	case query.NearbyStops:
		if !q.Offline {
			return nil, source.UnsupportedSourceError
		}
		return s.Directory.Nearest(q.Location, q.Count), nil
	}

	return nil, source.UnsupportedSourceError
}

// Stops missing from the file are handed on so ResRobot can still resolve them
func (s Source) stopQuery(q query.Stop) (*ctdf.Stop, error) {
	var stop *ctdf.Stop
	var err error

	if q.PrimaryIdentifier != "" {
		stop, err = s.Directory.ByID(q.PrimaryIdentifier)
	} else {
		stop, err = s.Directory.ByName(q.PrimaryName)
	}

	if errors.Is(err, stopdirectory.ErrStopNotFound) {
		return nil, source.UnsupportedSourceError
	}

	return stop, err
}
