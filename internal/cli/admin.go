package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/catalogo/service-catalog/internal/seed"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		Long: `Create the users and services tables (relational drivers) or their
indexes (mongo). Safe to run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			store, err := e.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(ctx); err != nil {
				e.log.Error().Err(err).Msg("migration failed")
				return err
			}
			e.log.Info().Str("driver", store.Driver()).Msg("schema up to date")
			return nil
		},
	}
}

const (
	nameFlag       = "name"
	emailFlag      = "email"
	passwordFlag   = "password"
	ownerEmailFlag = "owner-email"
)

func newCreateSuperadminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-superadmin",
		Short: "Create the first superadmin",
		Long: `Create a superadmin account. Does nothing when a superadmin already
exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			in := seed.Superadmin{}
			in.Name, _ = cmd.Flags().GetString(nameFlag)
			in.Email, _ = cmd.Flags().GetString(emailFlag)
			in.Password, _ = cmd.Flags().GetString(passwordFlag)

			e, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			store, err := e.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			user, created, err := seed.EnsureSuperadmin(ctx, store.Users, in, e.log)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "superadmin created: %s (id %d)\n", user.Email, user.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "superadmin already exists: %s (id %d)\n", user.Email, user.ID)
			}
			return nil
		},
	}

	cmd.Flags().String(nameFlag, "Super Admin", "Display name")
	cmd.Flags().String(emailFlag, "superadmin@example.com", "Login email")
	cmd.Flags().String(passwordFlag, "", "Login password (at least 6 characters)")
	_ = cmd.MarkFlagRequired(passwordFlag)
	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample catalog",
		Long: `Insert the sample services when the catalog is empty. They are owned by
--owner-email, or by the oldest superadmin (falling back to the oldest admin).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			ownerEmail, _ := cmd.Flags().GetString(ownerEmailFlag)

			e, err := setup(ctx, cmd)
			if err != nil {
				return err
			}
			store, err := e.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := seed.Services(ctx, store.Users, store.Services, ownerEmail, e.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d services inserted\n", n)
			return nil
		},
	}

	cmd.Flags().String(ownerEmailFlag, "", "Email of the admin or superadmin that owns the sample services")
	return cmd
}
