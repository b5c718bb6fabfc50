// Package directory resolves business parties and hubs. It replaces a process-wide
// endpoint table with a value injected into whoever needs it.
package directory

import (
	"fmt"
	"strings"

	"github.com/cologi/hubcustody/pkg/custody_server/model"
	"github.com/samber/lo"
)

type Directory interface {
	// Lookup returns model.ErrPartyNotFound for an unknown cid.
	Lookup(cid string) (model.Party, error)
	// HubName returns the display name of a hub, or an empty string when the GLN is unknown.
	HubName(gln string) string
}

type _StaticDirectory struct {
	parties map[string]model.Party
	hubs    map[string]string
}

// NewStaticDirectory builds a read-only directory. Later entries win over earlier ones with the same key.
func NewStaticDirectory(parties []model.Party, hubs []model.Hub) *_StaticDirectory {
	return &_StaticDirectory{
		parties: lo.SliceToMap(parties, func(p model.Party) (string, model.Party) { return p.CID, p }),
		hubs:    lo.SliceToMap(hubs, func(h model.Hub) (string, string) { return h.GLN, h.Name }),
	}
}

func (d *_StaticDirectory) Lookup(cid string) (model.Party, error) {
	party, ok := d.parties[strings.TrimSpace(cid)]
	if !ok || cid == "" {
		return model.Party{}, fmt.Errorf("%q: %w", cid, model.ErrPartyNotFound)
	}
	return party, nil
}

func (d *_StaticDirectory) HubName(gln string) string {
	return d.hubs[gln]
}
