package calculator

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"tariff-dashboard/internal/models"
)

//go:embed fta_groups.yaml
var ftaGroupsYAML []byte

// ftaTable is parsed once at init and never written afterwards.
var ftaTable = mustParseFTAGroups(ftaGroupsYAML)

func mustParseFTAGroups(data []byte) []models.FTAGroup {
	groups, err := parseFTAGroups(data)
	if err != nil {
		panic(fmt.Sprintf("calculator: embedded fta table: %v", err))
	}
	return groups
}

func parseFTAGroups(data []byte) ([]models.FTAGroup, error) {
	var groups []models.FTAGroup
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("decode fta groups: %w", err)
	}

	for i, g := range groups {
		if g.Name == "" {
			return nil, fmt.Errorf("fta group %d has no name", i)
		}
		if len(g.Members) < 2 {
			return nil, fmt.Errorf("fta group %q needs at least two members", g.Name)
		}
	}
	return groups, nil
}

// FTAGroups returns a copy of the agreement table.
func FTAGroups() []models.FTAGroup {
	out := make([]models.FTAGroup, len(ftaTable))
	for i, g := range ftaTable {
		out[i] = models.FTAGroup{Name: g.Name, Members: slices.Clone(g.Members)}
	}
	return out
}

// SharedAgreement reports the first agreement listing both countries.
// Argument order does not matter; unknown names never match.
func SharedAgreement(origin, target string) (models.FTAGroup, bool) {
	origin = strings.TrimSpace(origin)
	target = strings.TrimSpace(target)
	if origin == "" || target == "" {
		return models.FTAGroup{}, false
	}

	for _, g := range ftaTable {
		if slices.Contains(g.Members, origin) && slices.Contains(g.Members, target) {
			return models.FTAGroup{Name: g.Name, Members: slices.Clone(g.Members)}, true
		}
	}
	return models.FTAGroup{}, false
}

func HasFTA(origin, target string) bool {
	_, ok := SharedAgreement(origin, target)
	return ok
}
