package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/metalkit/netrecon/pkg/hwquery"
	"github.com/metalkit/netrecon/pkg/netconfig"
	"github.com/metalkit/netrecon/pkg/nicview"
	log "github.com/sirupsen/logrus"
)

type apiHandler struct {
	source hwquery.Source
}

// GroupSummary is the wire form of one classified physical card.
type GroupSummary struct {
	Prefix     string   `json:"prefix"`
	Shape      string   `json:"shape"`
	Vendor     string   `json:"vendor,omitempty"`
	Product    string   `json:"product,omitempty"`
	Disabled   bool     `json:"disabled"`
	Partitions int      `json:"partitions,omitempty"`
	PortMACs   []string `json:"portMacAddresses,omitempty"`
}

func summarize(group *nicview.NicGroup) GroupSummary {
	summary := GroupSummary{
		Prefix:   group.Prefix,
		Shape:    group.Shape(),
		Vendor:   group.Vendor,
		Product:  group.Product,
		Disabled: group.Disabled(),
	}
	if n, err := group.NPartitions(); err == nil {
		summary.Partitions = n
	}
	for _, port := range group.Ports {
		summary.PortMACs = append(summary.PortMACs, port.MAC())
	}
	return summary
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("cannot encode response: %s", err)
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *apiHandler) healthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *apiHandler) inventory(w http.ResponseWriter, r *http.Request) {
	groups, err := h.loadGroups(r)
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	summaries := make([]GroupSummary, 0, len(groups))
	for _, group := range groups {
		summaries = append(summaries, summarize(group))
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (h *apiHandler) reconcile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	cfg, err := netconfig.ParseConfig(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	m, err := netconfig.Build(cfg)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	groups, err := h.loadGroups(r)
	if err != nil {
		respondError(w, http.StatusBadGateway, err)
		return
	}
	opts := netconfig.MatchOptions{
		SynthesizePartitions: r.URL.Query().Get("synthesize") == "true",
	}
	if err := netconfig.Match(m, nicview.NewPool(groups), opts); err != nil {
		var matchErr *netconfig.MatchError
		if errors.As(err, &matchErr) {
			respondError(w, http.StatusConflict, err)
			return
		}
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusOK, m.Project())
}

func (h *apiHandler) loadGroups(r *http.Request) ([]*nicview.NicGroup, error) {
	records, err := h.source.NicView(r.Context())
	if err != nil {
		return nil, err
	}
	bios, err := h.source.BIOSEnumeration(r.Context())
	if err != nil {
		return nil, err
	}
	return nicview.BuildGroups(records, bios)
}
