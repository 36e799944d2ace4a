package parser

import (
	"errors"
	"os"

	"github.com/goccy/go-json"

	"hotel_reviews/internal/domain"
)

type hotelsDoc struct {
	SR *[]rawHotel `json:"sr"`
}

type rawHotel struct {
	ID       lenientString `json:"id"`
	Name     string        `json:"f"`
	Address  string        `json:"ad"`
	City     string        `json:"ci"`
	Province string        `json:"pr"`
	LL       struct {
		Lat lenientString `json:"lat"`
		Lng lenientString `json:"lng"`
	} `json:"ll"`
}

// ParseHotels decodes the hotels file ({"sr":[...]}). Entries without an id
// are dropped.
func ParseHotels(data []byte) ([]domain.Hotel, error) {
	var doc hotelsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.PathErr(domain.KindMalformedFile, "", err)
	}
	if doc.SR == nil {
		return nil, domain.PathErr(domain.KindMalformedFile, "", errors.New("missing sr array"))
	}
	out := make([]domain.Hotel, 0, len(*doc.SR))
	for _, h := range *doc.SR {
		if h.ID == "" {
			continue
		}
		out = append(out, domain.Hotel{
			ID:      string(h.ID),
			Name:    h.Name,
			Address: h.Address,
			City:    h.City,
			State:   h.Province,
			Lat:     string(h.LL.Lat),
			Lng:     string(h.LL.Lng),
		})
	}
	return out, nil
}

// LoadHotels reads and parses a hotels file from disk.
func LoadHotels(path string) ([]domain.Hotel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.PathErr(domain.KindFileIO, path, err)
	}
	hs, err := ParseHotels(data)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, err
	}
	return hs, nil
}
