package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cloudperiscope/secretreader/services/aws/secrets"
)

type rootOpts struct {
	profile  string
	region   string
	endpoint string
	logLevel string

	// readerOpts are appended after the flag-derived options.
	readerOpts []secrets.Option
}

func newRootCmd(readerOpts ...secrets.Option) *cobra.Command {
	opts := &rootOpts{readerOpts: readerOpts}

	c := &cobra.Command{
		Use:           "secretreader",
		Short:         "Read secrets from AWS Secrets Manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c.PersistentFlags().StringVar(&opts.profile, "profile", "", "Shared config profile to load credentials from")
	c.PersistentFlags().StringVar(&opts.region, "region", "", "AWS region (defaults to $"+secrets.RegionEnvVar+", then "+secrets.DefaultRegion+")")
	c.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "Custom Secrets Manager endpoint, e.g. a LocalStack URL")
	c.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	c.AddCommand(newGetCmd(opts), newKeyCmd(opts))

	return c
}

func newGetCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print the value of a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			r, err := opts.reader(c.ErrOrStderr())
			if err != nil {
				return err
			}

			value, err := r.GetSecret(c.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(c.OutOrStdout(), value)
			return err
		},
	}
}

func newKeyCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "key NAME [KEY]",
		Short: "Print one key of a JSON secret, or the whole document when KEY is omitted",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			r, err := opts.reader(c.ErrOrStderr())
			if err != nil {
				return err
			}

			var key string
			if len(args) == 2 {
				key = args[1]
			}

			value, err := r.GetSecretKey(c.Context(), args[0], key)
			if err != nil {
				return err
			}

			return printValue(c.OutOrStdout(), value)
		},
	}
}

func (o *rootOpts) reader(logOut io.Writer) (*secrets.Reader, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
	}

	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	readerOpts := []secrets.Option{
		secrets.WithLogger(logger),
		secrets.WithRetryer(secrets.DefaultRetryer()),
		secrets.WithClientConfig(secrets.ClientConfig{
			Profile:  o.profile,
			Region:   o.region,
			Endpoint: o.endpoint,
		}),
	}

	return secrets.New(append(readerOpts, o.readerOpts...)...), nil
}

// printValue writes strings as-is and everything else as indented JSON.
func printValue(w io.Writer, value any) error {
	if s, ok := value.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
