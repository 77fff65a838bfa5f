package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/kndndrj/gqlbee/client"
	"github.com/kndndrj/gqlbee/config"
	"github.com/kndndrj/gqlbee/core"
)

type queryResult struct {
	data     []byte
	fileName string
}

func newQueryCommand(cfgFile *string) *cobra.Command {
	var (
		queries     []string
		queryFiles  []string
		variableSet []string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "send queries to an endpoint and flatten the responses",
		Args:  cobra.NoArgs,
	}
	settings := bindConfig(cmd, config.Query(), cfgFile)
	cmd.Flags().StringArrayVarP(&queries, "query", "q", nil, "query document, repeatable")
	cmd.Flags().StringArrayVar(&queryFiles, "query-file", nil, "file with a query document, repeatable")
	cmd.Flags().StringArrayVar(&variableSet, "var", nil, "query variable as key=json-value, repeatable")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		v, err := settings()
		if err != nil {
			return err
		}

		logger := newLogger(v)
		defer logger.Close()

		for _, path := range queryFiles {
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("os.ReadFile: %w", err)
			}
			queries = append(queries, string(b))
		}
		if len(queries) < 1 {
			return errors.New("no query provided, use --query or --query-file")
		}

		variables, err := parseVariables(variableSet)
		if err != nil {
			return err
		}

		endpoint, err := core.Expand(v.GetString(config.KeyEndpoint))
		if err != nil {
			return fmt.Errorf("core.Expand: %w", err)
		}
		if endpoint == "" {
			return errors.New("no endpoint provided, use --endpoint")
		}

		var tokens oauth2.TokenSource
		if token := v.GetString(config.KeyToken); token != "" {
			tokens = client.TemplateToken(token, client.DefaultTokenLifetime)
		}

		c := client.New(endpoint, tokens,
			client.WithLogger(logger),
			client.WithTimeout(time.Duration(v.GetInt(config.KeyHTTPTimeout))*time.Second),
		)

		vf, err := newValueFormatter(v)
		if err != nil {
			return err
		}

		output := v.GetString(config.KeyOutput)
		if len(queries) > 1 && output != "" {
			if info, err := os.Stat(output); err != nil || !info.IsDir() {
				return fmt.Errorf("output %q must be an existing directory for multiple queries", output)
			}
		}

		results := make([]*queryResult, len(queries))

		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(max(1, v.GetInt(config.KeyConcurrency)))

		for i, query := range queries {
			g.Go(func() error {
				res, err := runQuery(ctx, c, vf, query, variables, v.GetString(config.KeyFormat))
				if err != nil {
					return fmt.Errorf("query %d: %w", i+1, err)
				}
				logger.Debugf("query %d done", i+1)
				results[i] = res
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		for _, res := range results {
			path, err := write(cmd.OutOrStdout(), output, res.data, res.fileName)
			if err != nil {
				return err
			}
			if path != "" {
				logger.Infof("written to %q", path)
			}
		}

		return nil
	}

	return cmd
}

func runQuery(ctx context.Context, c *client.Client, vf *core.ValueFormatter, query string, variables map[string]any, formatName string) (*queryResult, error) {
	body, err := c.Query(ctx, query, variables)
	if err != nil {
		return nil, err
	}

	table, err := core.Flatten(body, vf)
	if err != nil {
		return nil, err
	}

	var name string
	if fields, err := client.RootFields(query); err == nil && len(fields) > 0 {
		name = fields[0]
	}

	data, fileName, err := render(table, formatName, name)
	if err != nil {
		return nil, err
	}
	return &queryResult{data: data, fileName: fileName}, nil
}
