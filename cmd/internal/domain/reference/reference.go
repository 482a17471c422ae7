package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/labstack/gommon/log"
	"hotelrp/cmd/internal/domain/entity"
)

const (
	EventsFile     = "eventos.json"
	MarketFile     = "concorrencia.json"
	ActivitiesFile = "cnaes.json"
)

// Data holds every read-only reference dataset. It is loaded once at startup
// and never mutated afterwards.
type Data struct {
	Events     *entity.EventCatalog
	Market     *entity.MarketCatalog
	Activities *entity.ActivityTable
}

// Load reads all datasets from src. A missing dataset is not an error: it
// yields an empty value so the analytics defaults apply.
func Load(ctx context.Context, src Source) (*Data, error) {
	events := &entity.EventCatalog{}
	if err := readJSON(ctx, src, EventsFile, events); err != nil {
		return nil, err
	}
	events.Normalize()

	market := &entity.MarketCatalog{}
	if err := readJSON(ctx, src, MarketFile, market); err != nil {
		return nil, err
	}

	activities := &entity.ActivityTable{}
	if err := readJSON(ctx, src, ActivitiesFile, activities); err != nil {
		return nil, err
	}

	log.Infof("reference data loaded: %d events, %d hotels, %d strategic activities",
		len(events.Events), len(market.Hotels), len(activities.Activities))

	return &Data{
		Events:     events,
		Market:     market,
		Activities: activities,
	}, nil
}

func readJSON(ctx context.Context, src Source, name string, v any) error {
	data, err := src.Read(ctx, name)
	if errors.Is(err, ErrNotFound) {
		log.Warnf("reference dataset %s not found, using empty defaults", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// EventByID returns nil when no event has the given id.
func (d *Data) EventByID(id int) *entity.Event {
	for i := range d.Events.Events {
		if d.Events.Events[i].ID == id {
			return &d.Events.Events[i]
		}
	}
	return nil
}

func (d *Data) HotelByID(id int) *entity.CompetingHotel {
	for i := range d.Market.Hotels {
		if d.Market.Hotels[i].ID == id {
			return &d.Market.Hotels[i]
		}
	}
	return nil
}
