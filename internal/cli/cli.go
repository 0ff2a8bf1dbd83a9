package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"shipping-estimator/internal/domain"
	"shipping-estimator/internal/services"
)

const (
	promptOrigin      = "Enter the first location: "
	promptDestination = "Enter the second location: "
	promptWeight      = "Enter weight of parcel in kgs: "
)

// Run drives one interactive estimate: two places, then a weight. Invalid
// input is reported on out and ends the run without an error; the returned
// error is reserved for I/O failures.
func Run(ctx context.Context, in io.Reader, out io.Writer, est *services.Estimator, log *zap.Logger) error {
	if est == nil {
		return errors.New("cli: estimator is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	p := &prompter{sc: bufio.NewScanner(in), out: out}

	origin, err := p.ask(promptOrigin)
	if err != nil {
		return err
	}
	destination, err := p.ask(promptDestination)
	if err != nil {
		return err
	}

	leg, err := est.Distance(ctx, origin, destination)
	if err != nil {
		log.Debug("distance unavailable",
			zap.String("origin", origin),
			zap.String("destination", destination),
			zap.Error(err),
		)
		return p.printLines(DistanceDiagnostics(err)...)
	}

	rawWeight, err := p.ask(promptWeight)
	if err != nil {
		return err
	}

	weight, err := services.CheckWeight(rawWeight)
	if err != nil {
		return p.printLines("Error: " + services.WeightReason(err))
	}

	q, err := est.Build(leg, weight)
	if err != nil {
		log.Debug("quote failed", zap.Error(err))
		return p.printLines(DistanceDiagnostics(err)...)
	}

	return p.printLines(
		fmt.Sprintf("Cost in %s: %d. Time taken %d hours %d minutes",
			q.Currency, services.DisplayCost(q.Cost), q.Transit.Hours, q.Transit.Minutes),
		"Parcel shall be ready for pickup on:  "+services.FormatArrival(q.ArriveAt),
	)
}

// DistanceDiagnostics renders the user-facing lines for a failed distance
// lookup, one per unresolved place where that applies.
func DistanceDiagnostics(err error) []string {
	switch {
	case errors.Is(err, domain.ErrMissingPlace):
		return []string{"Please enter both origin and destination."}
	case errors.Is(err, domain.ErrDistanceCalculation):
		return []string{"Distance calculation failed. Confirm origin and destination entries."}
	}

	locErrs := services.LocationErrors(err)
	if len(locErrs) == 0 {
		return []string{"An error occurred while fetching location: " + err.Error()}
	}

	lines := make([]string, 0, len(locErrs)+1)
	for _, le := range locErrs {
		if le.NotFound() {
			lines = append(lines, fmt.Sprintf("Location not found for city: %s, country: %s", le.Place, le.Country))
			continue
		}
		lines = append(lines, "An error occurred while fetching location: "+le.Err.Error())
	}
	return append(lines, "Origin and/or destination could not be located on the map.")
}

type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func (p *prompter) ask(prompt string) (string, error) {
	if _, err := io.WriteString(p.out, prompt); err != nil {
		return "", fmt.Errorf("cli: write prompt: %w", err)
	}
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", fmt.Errorf("cli: read input: %w", err)
		}
		return "", fmt.Errorf("cli: read input: %w", io.ErrUnexpectedEOF)
	}
	return p.sc.Text(), nil
}

func (p *prompter) printLines(lines ...string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(p.out, l); err != nil {
			return fmt.Errorf("cli: write output: %w", err)
		}
	}
	return nil
}
