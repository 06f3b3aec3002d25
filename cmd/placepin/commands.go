package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/placepin/internal/app"
	"github.com/hyperifyio/placepin/internal/locate"
	"github.com/hyperifyio/placepin/internal/mapview"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var listen, static string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				opts.cfg.ListenAddr = listen
			}
			if cmd.Flags().Changed("static") {
				opts.cfg.StaticDir = static
			}
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			log.Info().Str("addr", opts.cfg.ListenAddr).Str("version", app.VersionString()).Msg("serving")
			return a.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&listen, "listen", app.DefaultListenAddr, "Listen address")
	cmd.Flags().StringVar(&static, "static", "", "Directory with the map page to serve at /")
	return cmd
}

func newCandidatesCmd(opts *rootOptions) *cobra.Command {
	var mode string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "candidates [text...|-]",
		Short: "List location candidates found in text",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseModeFlag(mode)
			if err != nil {
				return err
			}
			text, err := readText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			if m == "" {
				m = a.Mode()
			}
			cands := a.Candidates(text, m)
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, map[string]any{"mode": m, "candidates": cands})
			}
			for _, c := range cands {
				if _, err := fmt.Fprintln(out, c); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "Candidate mode: place, address or all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of one candidate per line")
	return cmd
}

func newScrapeCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Print the caption and hashtags of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			post, err := a.Service().Scraper.Scrape(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, post)
			}
			_, err = fmt.Fprintf(out, "%s\n%s\n", post.Text, post.HashtagLine())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func newOCRCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ocr <image>",
		Short: "Print the text recognized in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := app.ReadImage(args[0])
			if err != nil {
				return err
			}
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			text, err := a.Service().OCR.Recognize(cmd.Context(), img)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(text))
			return err
		},
	}
}

func newLocateCmd(opts *rootOptions) *cobra.Command {
	var mode, url, image string
	var withMap bool
	cmd := &cobra.Command{
		Use:   "locate [text...|-]",
		Short: "Extract candidates from text, a post URL or an image and geocode them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url != "" && image != "" {
				return errors.New("use only one of --url and --image")
			}
			if (url != "" || image != "") && len(args) > 0 {
				return errors.New("text arguments cannot be combined with --url or --image")
			}
			m, err := parseModeFlag(mode)
			if err != nil {
				return err
			}
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			if m == "" {
				m = a.Mode()
			}
			svc := a.Service()
			ctx := cmd.Context()

			var rep locate.Report
			switch {
			case url != "":
				rep, err = svc.FromURL(ctx, url, m)
			case image != "":
				img, rerr := app.ReadImage(image)
				if rerr != nil {
					return rerr
				}
				rep, err = svc.FromImage(ctx, img, m)
			default:
				text, rerr := readText(cmd.InOrStdin(), args)
				if rerr != nil {
					return rerr
				}
				rep, err = svc.FromText(ctx, text, m)
			}
			if err != nil {
				return err
			}
			if !withMap {
				return printJSON(cmd.OutOrStdout(), rep)
			}
			st := mapview.New()
			st.Render(rep.Pins())
			return printJSON(cmd.OutOrStdout(), map[string]any{"report": rep, "map": st})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "Candidate mode: place, address or all")
	cmd.Flags().StringVar(&url, "url", "", "Post URL to scrape")
	cmd.Flags().StringVar(&image, "image", "", "Image file to OCR")
	cmd.Flags().BoolVar(&withMap, "map", false, "Include the rendered map state")
	return cmd
}
