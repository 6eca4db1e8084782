package application

import (
	"context"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"areamsg/internal/domain"
	"areamsg/internal/domain/entities"
	"areamsg/internal/ports/output"
	pkgdiscord "areamsg/pkg/discord"
)

// Catalog keys used by region messages.
const (
	keyRegionAvailable = "region-info-available"
	keyRegionRented    = "region-info-rented"
	keyRegionSold      = "region-info-sold"
	keyRegionAnnounce  = "region-announce"
	keyListHeader      = "region-list-header"
	keyListEntry       = "region-list-entry"
	keyListEmpty       = "region-list-empty"
	keyRentExpired     = "region-rent-expired"
)

type RegionService struct {
	regionRepo output.RegionRepository
	messages   *MessageService
	printer    *message.Printer
	location   *time.Location
}

func NewRegionService(
	regionRepo output.RegionRepository,
	messages *MessageService,
	locale language.Tag,
	location *time.Location,
) *RegionService {
	if location == nil {
		location = time.UTC
	}
	return &RegionService{
		regionRepo: regionRepo,
		messages:   messages,
		printer:    message.NewPrinter(locale),
		location:   location,
	}
}

// Replacer returns the region variables of region.
func (s *RegionService) Replacer(region *entities.Region) entities.RegionReplacer {
	return &regionReplacements{region: region, printer: s.printer, location: s.location}
}

// Describe builds the status message of the named region.
func (s *RegionService) Describe(ctx context.Context, name string) (*entities.Message, error) {
	region, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}
	key := keyRegionAvailable
	switch {
	case region.Type == domain.RegionTypeRent && region.IsRented():
		key = keyRegionRented
	case region.Type == domain.RegionTypeBuy && region.Owner != "":
		key = keyRegionSold
	}
	return s.messages.FromKey(key, entities.RegionArg(s.Replacer(region))).Prefix(), nil
}

// Announce builds the public advertisement of the named region.
func (s *RegionService) Announce(ctx context.Context, name string) (*entities.Message, error) {
	region, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.messages.FromKey(keyRegionAnnounce, entities.RegionArg(s.Replacer(region))), nil
}

// ListAll builds a message with one nested entry per region.
func (s *RegionService) ListAll(ctx context.Context) (*entities.Message, error) {
	regions, err := s.regionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return s.messages.FromKey(keyListEmpty).Prefix(), nil
	}
	lines := make([]string, 0, len(regions)+1)
	lines = append(lines, "%lang:"+keyListHeader+"|"+strconv.Itoa(len(regions))+"%")
	args := make([]entities.Replacement, 0, len(regions))
	for i := range regions {
		lines = append(lines, positionalVariable(i))
		entry := s.messages.FromKey(keyListEntry, entities.RegionArg(s.Replacer(&regions[i])))
		args = append(args, entities.Nested(entry))
	}
	return entities.FromLines(lines...).Replacements(args...).Prefix(), nil
}

// Expired builds one announcement per rent whose end falls in (since, now].
func (s *RegionService) Expired(ctx context.Context, since, now time.Time) ([]*entities.Message, error) {
	regions, err := s.regionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*entities.Message
	for i := range regions {
		r := &regions[i]
		if r.Type != domain.RegionTypeRent || r.Owner == "" {
			continue
		}
		if !r.RentedUntil.After(since) || r.RentedUntil.After(now) {
			continue
		}
		out = append(out, s.messages.FromKey(keyRentExpired, entities.RegionArg(s.Replacer(r))))
	}
	return out, nil
}

func (s *RegionService) find(ctx context.Context, name string) (*entities.Region, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrRegionNameEmpty
	}
	return s.regionRepo.FindByName(ctx, name)
}

// regionReplacements is the region capability handed to the resolver.
type regionReplacements struct {
	region   *entities.Region
	printer  *message.Printer
	location *time.Location
}

func (r *regionReplacements) ApplyAllReplacements(line string) string {
	if !strings.Contains(line, entities.VariableStart) {
		return line
	}
	until := ""
	if !r.region.RentedUntil.IsZero() {
		until = pkgdiscord.FormatDateTime(r.region.RentedUntil.In(r.location))
	}
	return strings.NewReplacer(
		"%region%", r.region.Name,
		"%type%", r.region.Type,
		"%world%", r.region.World,
		"%owner%", r.region.Owner,
		"%price%", r.printer.Sprintf("%.2f", r.region.Price),
		"%duration%", pkgdiscord.FormatDuration(r.region.Duration),
		"%until%", until,
	).Replace(line)
}
