package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/kbukum/authfront/identity/identitytest"
	"github.com/kbukum/authfront/logger"
	"github.com/kbukum/authfront/server"
)

func identityDevCmd() *cobra.Command {
	var (
		srvCfg server.Config
		secret string
		ttl    time.Duration
		seed   []string
	)
	cmd := &cobra.Command{
		Use:   "identity-dev",
		Short: "Serve an in-memory identity service for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srvCfg.ApplyDefaults()
			if err := srvCfg.Validate(); err != nil {
				return err
			}
			log := logger.Get("identity-dev")

			opts := []identitytest.Option{identitytest.WithBcryptCost(bcrypt.DefaultCost), identitytest.WithTTL(ttl)}
			if secret != "" {
				opts = append(opts, identitytest.WithSecret(secret))
			}
			svc := identitytest.New(opts...)
			for _, s := range seed {
				name, email, password, err := parseSeed(s)
				if err != nil {
					return err
				}
				if _, err := svc.AddUser(name, email, password); err != nil {
					return fmt.Errorf("seed %s: %w", email, err)
				}
			}

			srv := server.New(srvCfg, log)
			srv.ApplyMiddleware()
			srv.RegisterDefaultEndpoints("identity-dev")
			svc.Register(srv.GinEngine().Group(identitytest.BasePath))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "identity service listening on http://%s%s\n", srv.Addr(), identitytest.BasePath)

			<-ctx.Done()
			return srv.Stop(context.Background())
		},
	}
	cmd.Flags().StringVar(&srvCfg.Host, "host", "127.0.0.1", "listen host")
	cmd.Flags().IntVar(&srvCfg.Port, "port", 3000, "listen port")
	cmd.Flags().StringVar(&secret, "secret", "", "token signing secret (random when empty)")
	cmd.Flags().DurationVar(&ttl, "session-ttl", 7*24*time.Hour, "session lifetime")
	cmd.Flags().StringArrayVar(&seed, "user", nil, "seed an account as name:email:password (repeatable)")
	return cmd
}

func parseSeed(s string) (name, email, password string, err error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("invalid --user %q: want name:email:password", s)
	}
	return parts[0], parts[1], parts[2], nil
}
