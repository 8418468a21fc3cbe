package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-artisans/internal/client"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/spf13/cobra"
)

func newTradesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trades",
		Short: "List trades with the number of artisans in each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades, err := a.api.Trades(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range trades {
				fmt.Fprintf(out, "%s %-12s %d\n", t.Icon, t.Name, t.Count)
			}
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		crit          client.Criteria
		onlyAvailable bool
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search artisans by trade, rating, price and availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.api.ListArtisans(cmd.Context(), crit.Category, onlyAvailable)
			if err != nil {
				return err
			}
			// The server matches the trade case-insensitively; Apply is exact.
			crit.Category = ""
			found := crit.Apply(list)
			out := cmd.OutOrStdout()
			if len(found) == 0 {
				fmt.Fprintln(out, "Aucun artisan trouvé")
				return nil
			}
			for i := range found {
				fmt.Fprintf(out, "%s  %s\n", mutedStyle.Render(found[i].ID), artisanLine(&found[i]))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&crit.Category, "trade", "", "Trade name, e.g. Plombier")
	f.StringVar(&crit.Filters.Availability, "availability", "", "Exact availability, e.g. Disponible")
	f.Float64Var(&crit.Filters.MinRating, "min-rating", 0, "Minimum rating")
	f.StringVar(&crit.Filters.PriceRange, "price", "", "Price tier: Économique, Moyen or Premium")
	f.BoolVar(&onlyAvailable, "only-available", false, "Only artisans currently available")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <artisan-id>",
		Short: "Show an artisan profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artisan, err := a.api.GetArtisan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), artisanCard(artisan))
			return nil
		},
	}
}

func newContactCmd(a *app) *cobra.Command {
	var (
		in              models.NewRequestInput
		whatsapp, phone bool
	)
	cmd := &cobra.Command{
		Use:   "contact <artisan-id>",
		Short: "Send a request to an artisan and print the contact links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if whatsapp && phone {
				return errors.New("--whatsapp and --call are exclusive")
			}
			ctx := cmd.Context()
			artisan, err := a.api.GetArtisan(ctx, args[0])
			if err != nil {
				return err
			}
			in.ArtisanID = artisan.ID
			req, err := a.api.CreateRequest(ctx, in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", successStyle.Render("Demande envoyée"), mutedStyle.Render(req.ID))
			if !phone {
				fmt.Fprintln(out, "WhatsApp:", client.WhatsAppURL(whatsappNumber(artisan), client.Greeting(artisan.Name)))
			}
			if !whatsapp {
				fmt.Fprintln(out, "Appel:   ", client.TelURL(artisan.Phone))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.ClientName, "name", "", "Your name")
	f.StringVar(&in.ClientPhone, "phone", "", "Your phone number")
	f.StringVar(&in.Service, "service", "", "Service needed")
	f.StringVar(&in.Description, "description", "", "Details of the job")
	f.StringVar(&in.Location, "location", "", "Where the job is")
	f.StringVar(&in.Urgency, "urgency", "", "Urgency (default Flexible)")
	f.StringVar(&in.Budget, "budget", "", "Budget")
	f.BoolVar(&whatsapp, "whatsapp", false, "Only print the WhatsApp link")
	f.BoolVar(&phone, "call", false, "Only print the phone link")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("service")
	return cmd
}

// whatsappNumber prefers the dedicated WhatsApp number over the phone.
func whatsappNumber(a *models.ArtisanProfile) string {
	if strings.TrimSpace(a.WhatsApp) != "" {
		return a.WhatsApp
	}
	return a.Phone
}
