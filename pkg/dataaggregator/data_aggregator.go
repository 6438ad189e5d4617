package dataaggregator

import (
	"context"
	"errors"
	"reflect"

	"github.com/Zandri2k/Travel-Planner/pkg/dataaggregator/source"
	"github.com/rs/zerolog/log"
)

var ErrNoSource = errors.New("failed to find a matching data source for type")

type Aggregator struct {
	Sources []DataSource
}

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

// Lookup asks every source supporting T in registration order. A source that
// answers with source.UnsupportedSourceError hands the query on to the next one.
func Lookup[T any](ctx context.Context, a *Aggregator, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, dataSource := range a.Sources {
		matches := false

		for _, supportedType := range dataSource.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}

		if !matches {
			continue
		}

		returnValue, returnError := dataSource.Lookup(ctx, query)

		if errors.Is(returnError, source.UnsupportedSourceError) {
			continue
		}

		if returnValue == nil {
			return empty, returnError
		}

		typed, ok := returnValue.(T)
		if !ok {
			log.Error().Str("source", dataSource.GetName()).Str("type", lookupType.String()).Msg("Data Source returned the wrong type")
			continue
		}

		return typed, returnError
	}

	return empty, ErrNoSource
}
