package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diewo77/go-artisans/internal/client"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/spf13/cobra"
)

func newSignupCmd(a *app) *cobra.Command {
	var p client.SignupParams
	var userType string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.UserType = models.UserType(userType)
			if err := a.auth.Signup(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bienvenue %s (%s)\n", a.auth.User().Name, a.auth.User().ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Email, "email", "", "Email")
	f.StringVar(&p.Password, "password", "", "Password")
	f.StringVar(&p.Name, "name", "", "Display name")
	f.StringVar(&p.Phone, "phone", "", "Phone number")
	f.StringVar(&userType, "type", string(models.UserTypeArtisan), "Account type: artisan or client")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connecté en tant que %s\n", a.auth.User().Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Déconnecté")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireLogin(); err != nil {
				return err
			}
			if err := a.auth.Refresh(cmd.Context()); err != nil {
				return err
			}
			u := a.auth.User()
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s %s\n", u.Name, u.Email, u.UserType, mutedStyle.Render(u.ID))
			return nil
		},
	}
}

func newRequestsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List the requests sent to your artisan profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.requireLogin()
			if err != nil {
				return err
			}
			reqs, err := a.api.ListRequests(cmd.Context(), a.auth.Token(), id)
			if err != nil {
				return err
			}
			printRequests(cmd.OutOrStdout(), reqs)
			return nil
		},
	}
}

func newRequestStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "request-status <request-id> <new|viewed|responded>",
		Short: "Change the status of one of your requests",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireLogin(); err != nil {
				return err
			}
			req, err := a.api.UpdateRequestStatus(cmd.Context(), a.auth.Token(), args[0], models.RequestStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), requestLine(req))
			return nil
		},
	}
}

// availabilityAliases lets the CLI take short English names.
var availabilityAliases = map[string]string{
	"available": models.AvailabilityAvailable,
	"busy":      models.AvailabilityBusy,
	"soon":      models.AvailabilitySoon,
}

func newAvailabilityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "availability <available|busy|soon|value>",
		Short: "Set your availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.requireLogin()
			if err != nil {
				return err
			}
			value := args[0]
			if v, ok := availabilityAliases[strings.ToLower(value)]; ok {
				value = v
			}
			p, err := a.api.UpdateArtisan(cmd.Context(), a.auth.Token(), id, map[string]any{"availability": value})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Disponibilité:", availabilityBadge(p.Availability))
			return nil
		},
	}
}

func newProfileCmd(a *app) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your artisan profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.requireLogin()
			if err != nil {
				return err
			}
			p, err := a.api.GetArtisan(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), artisanCard(p))
			return nil
		},
	}
	profile.AddCommand(&cobra.Command{
		Use:   "set key=value...",
		Short: "Update profile fields",
		Example: `  artisans profile set trade=Plombier hourlyRate="20 USD/h"
  artisans profile set skills="Dépannage,Câblage" verified=true`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.requireLogin()
			if err != nil {
				return err
			}
			fields, err := parseProfileFields(args)
			if err != nil {
				return err
			}
			p, err := a.api.UpdateArtisan(cmd.Context(), a.auth.Token(), id, fields)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), artisanCard(p))
			return nil
		},
	})
	return profile
}

// parseProfileFields turns key=value pairs into a JSON patch, typing the
// values the server expects as numbers, booleans or lists.
func parseProfileFields(pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		switch key {
		case "skills":
			skills := []string{}
			for _, s := range strings.Split(value, ",") {
				if s = strings.TrimSpace(s); s != "" {
					skills = append(skills, s)
				}
			}
			fields[key] = skills
		case "verified":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			fields[key] = b
		case "rating":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			fields[key] = f
		case "reviewCount", "completedJobs":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			fields[key] = n
		default:
			fields[key] = value
		}
	}
	return fields, nil
}
