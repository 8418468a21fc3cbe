package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/diewo77/go-artisans/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8f98"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2a3850")).
			Padding(0, 1)
)

func availabilityBadge(v string) string {
	switch v {
	case models.AvailabilityAvailable:
		return successStyle.Render(v)
	case models.AvailabilityBusy:
		return errorStyle.Render(v)
	default:
		return warningStyle.Render(v)
	}
}

// artisanLine is the one-line summary used in lists.
func artisanLine(a *models.ArtisanProfile) string {
	return fmt.Sprintf("%s  %s · %s · ★ %.1f (%d) · %s",
		titleStyle.Render(a.Name), a.Trade, a.Location, a.Rating, a.ReviewCount,
		availabilityBadge(a.Availability))
}

func artisanCard(a *models.ArtisanProfile) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(a.Name))
	if a.Verified {
		sb.WriteString(" " + successStyle.Render("✓ vérifié"))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s · %s\n", a.Trade, a.Location)
	fmt.Fprintf(&sb, "★ %.1f (%d avis) · %d travaux · %s d'expérience\n",
		a.Rating, a.ReviewCount, a.CompletedJobs, a.Experience)
	fmt.Fprintf(&sb, "Tarif: %s (%s)\n", a.HourlyRate, a.PriceRange)
	fmt.Fprintf(&sb, "Disponibilité: %s\n", availabilityBadge(a.Availability))
	if len(a.Skills) > 0 {
		fmt.Fprintf(&sb, "Compétences: %s\n", strings.Join(a.Skills, ", "))
	}
	if a.Description != "" {
		sb.WriteString(mutedStyle.Render(a.Description) + "\n")
	}
	fmt.Fprintf(&sb, "Téléphone: %s", a.Phone)
	return cardStyle.Render(sb.String())
}

func requestLine(r *models.ClientRequest) string {
	status := string(r.Status)
	if r.Status == models.StatusNew {
		status = warningStyle.Render(status)
	}
	return fmt.Sprintf("%s  [%s] %s · %s (%s) · %s · %s",
		mutedStyle.Render(r.ID), status, r.Service, r.ClientName, r.ClientPhone,
		r.Urgency, r.Date.Format("2006-01-02 15:04"))
}

func printRequests(w io.Writer, reqs []models.ClientRequest) {
	fmt.Fprintf(w, "%d demande(s), %d nouvelle(s)\n", len(reqs), models.CountByStatus(reqs, models.StatusNew))
	for i := range reqs {
		fmt.Fprintln(w, requestLine(&reqs[i]))
	}
}
