package services

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tariff-dashboard/internal/calculator"
	"tariff-dashboard/internal/models"
)

const (
	batchSize     = 1000
	presetColumns = 9
	marketsSep    = ";"
)

// LoadPresetsFromCSV reads scenario presets with the header
//
//	name,trade_volume,tariff_rate,alternative_markets,diversification_score,origin,target,disruption_probability,horizon
//
// alternative_markets is a semicolon separated list. Malformed rows are
// skipped and logged; a file with no usable rows is an error.
func (a *Advisor) LoadPresetsFromCSV(ctx context.Context, filename string) error {
	start := time.Now()
	a.logger.Info("loading scenario presets", "filename", filename)

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	// Skip header
	if !scanner.Scan() {
		return fmt.Errorf("empty file")
	}

	var (
		presets []models.Scenario
		skipped int
	)

	batch := make([]string, 0, batchSize)
	flush := func() error {
		parsed, bad, err := a.parseBatch(ctx, batch)
		if err != nil {
			return err
		}
		presets = append(presets, parsed...)
		skipped += bad
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		batch = append(batch, line)

		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if len(batch) > 0 {
		if err := flush(); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	if len(presets) == 0 {
		return fmt.Errorf("no valid presets found")
	}

	if err := a.SetPresets(presets); err != nil {
		return err
	}

	a.mu.Lock()
	a.presetsPath = filename
	a.mu.Unlock()

	a.logger.Info("scenario presets loaded",
		"presets", len(presets),
		"skipped", skipped,
		"duration", time.Since(start),
	)
	return nil
}

// parseBatch parses lines concurrently and returns the valid scenarios in
// file order together with the number of rejected lines.
func (a *Advisor) parseBatch(ctx context.Context, batch []string) ([]models.Scenario, int, error) {
	results := make([]*models.Scenario, len(batch))

	var g errgroup.Group
	g.SetLimit(a.maxWorkers)

	for i, line := range batch {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			s, err := parseScenario(strings.Split(line, ","))
			if err != nil {
				a.logger.Warn("skipping preset row", "row", line, "error", err)
				return nil
			}
			results[i] = &s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	parsed := make([]models.Scenario, 0, len(results))
	for _, s := range results {
		if s != nil {
			parsed = append(parsed, *s)
		}
	}
	return parsed, len(batch) - len(parsed), nil
}

func parseScenario(record []string) (models.Scenario, error) {
	if len(record) < presetColumns {
		return models.Scenario{}, fmt.Errorf("insufficient columns")
	}

	name := strings.TrimSpace(record[0])
	if name == "" {
		return models.Scenario{}, fmt.Errorf("missing name")
	}

	volume, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return models.Scenario{}, fmt.Errorf("trade_volume: %w", err)
	}

	tariff, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return models.Scenario{}, fmt.Errorf("tariff_rate: %w", err)
	}

	diversification, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
	if err != nil {
		return models.Scenario{}, fmt.Errorf("diversification_score: %w", err)
	}

	probability, err := strconv.ParseFloat(strings.TrimSpace(record[7]), 64)
	if err != nil {
		return models.Scenario{}, fmt.Errorf("disruption_probability: %w", err)
	}

	horizon, err := strconv.Atoi(strings.TrimSpace(record[8]))
	if err != nil {
		return models.Scenario{}, fmt.Errorf("horizon: %w", err)
	}

	s := models.Scenario{
		Name:                  name,
		TradeVolume:           volume,
		TariffRate:            tariff,
		AlternativeMarkets:    splitMarkets(record[3]),
		DiversificationScore:  diversification,
		Origin:                strings.TrimSpace(record[5]),
		Target:                strings.TrimSpace(record[6]),
		DisruptionProbability: probability,
		Horizon:               horizon,
	}
	if err := calculator.ValidateScenario(s); err != nil {
		return models.Scenario{}, err
	}
	return s, nil
}

func splitMarkets(field string) []string {
	markets := []string{}
	for _, m := range strings.Split(field, marketsSep) {
		if m = strings.TrimSpace(m); m != "" {
			markets = append(markets, m)
		}
	}
	return markets
}
