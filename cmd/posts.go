package main

import (
	"context"
	"sentiment/internal/config"
	"sentiment/internal/posts"
	"sentiment/pkg/domain"
	"sentiment/pkg/logger"

	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// postsCommand prints stored posts as JSON, either all of them or those of
// a single ticker, using the same service as the API.
func postsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts [ticker]",
		Short: "Prints stored posts as JSON",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.RequestTimeout)
			defer cancel()

			strg, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()
			svc := posts.New(strg, nil)

			var (
				ticker string
				result []domain.Post
				err    error
			)
			if len(args) == 1 {
				ticker, result, err = svc.ByTicker(ctx, args[0])
			} else {
				result, err = svc.All(ctx)
			}
			if err != nil {
				logger.Fatal(ctx, "could not get posts", zap.Error(err))
			}

			var e jx.Encoder
			e.SetIdent(2)
			e.ObjStart()
			if ticker != "" {
				e.FieldStart("ticker")
				e.Str(ticker)
			}
			e.FieldStart("posts")
			e.ArrStart()
			for _, p := range result {
				if err := p.Encode(&e); err != nil {
					logger.Fatal(ctx, "could not encode post", zap.Error(err), zap.String("id", p.ID))
				}
			}
			e.ArrEnd()
			e.ObjEnd()

			if _, err := cmd.OutOrStdout().Write(append(e.Bytes(), '\n')); err != nil {
				logger.Fatal(ctx, "could not write posts", zap.Error(err))
			}
		},
	}

	return cmd
}
