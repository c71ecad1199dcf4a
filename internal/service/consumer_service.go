package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/ports"
	"waterworks-backend/internal/repository"
)

// ConsumerService owns consumer identity: WSIN allocation and lookup.
type ConsumerService struct {
	Consumers ports.ConsumerStore
	Logger    *slog.Logger
}

// ConsumerDefaults fill in the identity fields of a consumer created on the
// fly during import or first billing.
type ConsumerDefaults struct {
	ConsumerName string
	ServiceType  domain.ServiceType
	ConsumerType domain.ConsumerType
	Actor        domain.Actor
}

// NextWSIN allocates the next sequential WSIN for a location: one past the
// highest already assigned, "1" when the location is empty. A store failure
// degrades to scanning the caller's already-fetched consumer list instead of
// failing the form. The read-then-write sequence is not atomic against a
// concurrent submission for the same location; the store's unique
// (location, wsin) index is the backstop.
func (s ConsumerService) NextWSIN(ctx context.Context, location string, known []domain.Consumer) string {
	max, err := s.Consumers.MaxWSIN(ctx, location)
	if err == nil {
		return strconv.Itoa(max + 1)
	}
	s.Logger.Warn("wsin query failed, falling back to local scan", "location", location, "err", err)

	max = 0
	for _, c := range known {
		if c.Location != location {
			continue
		}
		if n, convErr := strconv.Atoi(c.WSIN); convErr == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// Find filters consumers by optional name (case-insensitive substring) and
// optional location (exact). Both absent returns everything.
func (s ConsumerService) Find(ctx context.Context, name, location string) ([]domain.Consumer, error) {
	all, err := s.Consumers.List(ctx)
	if err != nil {
		return nil, err
	}
	if name == "" && location == "" {
		return all, nil
	}

	needle := strings.ToLower(name)
	var matched []domain.Consumer
	for _, c := range all {
		if name != "" && !strings.Contains(strings.ToLower(c.ConsumerName), needle) {
			continue
		}
		if location != "" && c.Location != location {
			continue
		}
		matched = append(matched, c)
	}
	return matched, nil
}

// FindOrCreate resolves a consumer by its exact (wsin, location) identity,
// creating it with the given defaults when absent. Lookup is idempotent by
// identity, so re-running an import reuses consumers instead of duplicating
// them. A create that loses a duplicate race re-reads the winner.
func (s ConsumerService) FindOrCreate(ctx context.Context, wsin, location string, defaults ConsumerDefaults) (*domain.Consumer, error) {
	existing, err := s.Consumers.FindByIdentity(ctx, wsin, location)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	serviceType := defaults.ServiceType
	if serviceType == "" {
		serviceType = domain.ServiceResidential
	}
	consumerType := defaults.ConsumerType
	if consumerType == "" {
		consumerType = domain.ConsumerNew
	}

	createdByName := defaults.Actor.DisplayName
	if createdByName == "" {
		createdByName = "Unknown User"
	}

	created, err := s.Consumers.Create(ctx, domain.Consumer{
		WSIN:          wsin,
		ConsumerName:  defaults.ConsumerName,
		Location:      location,
		ServiceType:   serviceType,
		ConsumerType:  consumerType,
		CreatedBy:     defaults.Actor.Email,
		CreatedByName: createdByName,
	})
	if err != nil {
		if repository.IsDuplicate(err) {
			return s.Consumers.FindByIdentity(ctx, wsin, location)
		}
		return nil, err
	}
	return created, nil
}
