package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"areamsg/internal/domain"
	"areamsg/internal/domain/entities"
	"areamsg/pkg/logger"
)

type memoryRegions struct {
	regions []entities.Region
	err     error
}

func (m *memoryRegions) FindByName(_ context.Context, name string) (*entities.Region, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.regions {
		if strings.EqualFold(m.regions[i].Name, name) {
			r := m.regions[i]
			return &r, nil
		}
	}
	return nil, domain.ErrRegionNotFound
}

func (m *memoryRegions) List(_ context.Context) ([]entities.Region, error) {
	return m.regions, m.err
}

var regionTemplates = memoryTemplates{
	"prefix":                {"[P]"},
	"region-header":         {"Region %region% (%world%)"},
	"region-info-available": {"%lang:region-header%", "Price: %price%"},
	"region-info-rented":    {"%lang:region-header%", "Rented by %owner% until %until% for %duration%"},
	"region-info-sold":      {"%lang:region-header%", "Owned by %owner%"},
	"region-announce":       {"%region% is up for %type%"},
	"region-list-header":    {"%0% regions:"},
	"region-list-entry":     {"- %region%: %price%"},
	"region-list-empty":     {"No regions."},
}

func newTestRegionService(repo *memoryRegions) (*RegionService, *MessageService) {
	resolver := NewResolver(regionTemplates, WithLogger(logger.Discard()))
	messages := NewMessageService(regionTemplates, resolver, nil, Settings{}, logger.Discard())
	return NewRegionService(repo, messages, language.English, time.UTC), messages
}

func TestRegionServiceDescribe(t *testing.T) {
	t.Parallel()

	until := time.Date(2099, 1, 2, 15, 4, 0, 0, time.UTC)
	repo := &memoryRegions{regions: []entities.Region{
		{Name: "spawn", Type: domain.RegionTypeBuy, World: "world", Price: 100},
		{Name: "shop1", Type: domain.RegionTypeRent, World: "city", Owner: "Ann", Price: 25.5,
			Duration: 7 * 24 * time.Hour, RentedUntil: until},
		{Name: "villa", Type: domain.RegionTypeBuy, World: "world", Owner: "Bob", Price: 900},
		{Name: "shop2", Type: domain.RegionTypeRent, World: "city", Owner: "Eve", Price: 10,
			RentedUntil: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}
	svc, messages := newTestRegionService(repo)

	tests := []struct {
		name   string
		region string
		want   []string
	}{
		{name: "available sale", region: "spawn", want: []string{"[P]", "Region spawn (world)", "Price: 100.00"}},
		{name: "rented", region: "SHOP1", want: []string{"[P]", "Region shop1 (city)", "Rented by Ann until 02/01/2099 15:04 for 7d"}},
		{name: "sold", region: "villa", want: []string{"[P]", "Region villa (world)", "Owned by Bob"}},
		{name: "expired rent is available", region: "shop2", want: []string{"[P]", "Region shop2 (city)", "Price: 10.00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg, err := svc.Describe(context.Background(), tt.region)
			require.NoError(t, err)
			assert.Equal(t, tt.want, messages.Resolve(msg))
		})
	}
}

func TestRegionServiceDescribeErrors(t *testing.T) {
	t.Parallel()

	svc, _ := newTestRegionService(&memoryRegions{})

	_, err := svc.Describe(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrRegionNameEmpty)

	_, err = svc.Describe(context.Background(), "nowhere")
	assert.ErrorIs(t, err, domain.ErrRegionNotFound)

	_, err = svc.Announce(context.Background(), "nowhere")
	assert.ErrorIs(t, err, domain.ErrRegionNotFound)
}

func TestRegionServiceAnnounce(t *testing.T) {
	t.Parallel()

	svc, messages := newTestRegionService(&memoryRegions{regions: []entities.Region{
		{Name: "spawn", Type: domain.RegionTypeBuy, World: "world"},
	}})

	msg, err := svc.Announce(context.Background(), "spawn")
	require.NoError(t, err)
	assert.Equal(t, []string{"spawn is up for buy"}, messages.Resolve(msg))
}

func TestRegionServiceListAll(t *testing.T) {
	t.Parallel()

	t.Run("one nested entry per region", func(t *testing.T) {
		t.Parallel()
		svc, messages := newTestRegionService(&memoryRegions{regions: []entities.Region{
			{Name: "a", Price: 1},
			{Name: "b", Price: 2},
			{Name: "c", Price: 3},
		}})

		msg, err := svc.ListAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{
			"[P]",
			"3 regions:",
			"- a: 1.00",
			"- b: 2.00",
			"- c: 3.00",
		}, messages.Resolve(msg))
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		svc, messages := newTestRegionService(&memoryRegions{})

		msg, err := svc.ListAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"[P]", "No regions."}, messages.Resolve(msg))
	})

	t.Run("repository error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		svc, _ := newTestRegionService(&memoryRegions{err: boom})

		_, err := svc.ListAll(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestRegionReplacementsLeaveOtherText(t *testing.T) {
	t.Parallel()

	svc, _ := newTestRegionService(&memoryRegions{})
	replacer := svc.Replacer(&entities.Region{Name: "spawn"})

	assert.Equal(t, "no variables", replacer.ApplyAllReplacements("no variables"))
	assert.Equal(t, "spawn %0% %unknown%", replacer.ApplyAllReplacements("%region% %0% %unknown%"))
	assert.Equal(t, "[]", replacer.ApplyAllReplacements("[%until%]"))
}

func TestRegionServiceExpired(t *testing.T) {
	t.Parallel()

	since := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	now := since.Add(10 * time.Minute)
	templates := memoryTemplates{"region-rent-expired": {"%region% is free, %owner% left"}}
	messages := NewMessageService(templates, NewResolver(templates), nil, Settings{}, logger.Discard())
	svc := NewRegionService(&memoryRegions{regions: []entities.Region{
		{Name: "ended", Type: domain.RegionTypeRent, Owner: "Ann", RentedUntil: since.Add(5 * time.Minute)},
		{Name: "boundary", Type: domain.RegionTypeRent, Owner: "Bob", RentedUntil: now},
		{Name: "earlier", Type: domain.RegionTypeRent, Owner: "Cid", RentedUntil: since},
		{Name: "running", Type: domain.RegionTypeRent, Owner: "Dan", RentedUntil: now.Add(time.Second)},
		{Name: "vacant", Type: domain.RegionTypeRent, RentedUntil: since.Add(time.Minute)},
		{Name: "sold", Type: domain.RegionTypeBuy, Owner: "Eve", RentedUntil: since.Add(time.Minute)},
	}}, messages, language.English, time.UTC)

	msgs, err := svc.Expired(context.Background(), since, now)
	require.NoError(t, err)

	var got []string
	for _, msg := range msgs {
		got = append(got, strings.Join(messages.Resolve(msg), "\n"))
	}
	assert.Equal(t, []string{"ended is free, Ann left", "boundary is free, Bob left"}, got)
}

func TestRegionServiceListAllLargeServer(t *testing.T) {
	t.Parallel()

	const n = 2000
	regions := make([]entities.Region, n)
	for i := range regions {
		regions[i] = entities.Region{Name: fmt.Sprintf("plot-%04d", i), Price: 5}
	}
	svc, messages := newTestRegionService(&memoryRegions{regions: regions})

	msg, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	lines := messages.Resolve(msg)

	require.Len(t, lines, n+2)
	assert.Equal(t, "2000 regions:", lines[1])
	assert.Equal(t, "- plot-0000: 5.00", lines[2])
	assert.Equal(t, "- plot-1999: 5.00", lines[n+1])
	assert.False(t, hasTokens(lines))
}
