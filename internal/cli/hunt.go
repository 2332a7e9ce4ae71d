package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHuntCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hunt",
		Short: "Hidden-object hunt commands",
	}

	cmd.AddCommand(newHuntStartCmd())
	cmd.AddCommand(newHuntStatusCmd())
	cmd.AddCommand(newHuntPanCmd())
	cmd.AddCommand(newHuntClickCmd())
	cmd.AddCommand(newHuntTransitionCmd())
	cmd.AddCommand(newHuntRestartCmd())
	cmd.AddCommand(newHuntSummaryCmd())
	cmd.AddCommand(newHuntProgressCmd())

	return cmd
}

func newHuntStartCmd() *cobra.Command {
	var room int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a hunt session",
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceID, err := cfg.DeviceID()
			if err != nil {
				return err
			}

			req := map[string]any{"deviceId": deviceID, "room": room}
			var result HuntState

			if err := client.Post("/api/v1/hunt/sessions", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&room, "room", 0, "Room index to start at (must be unlocked)")

	return cmd
}

func newHuntStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <session-id>",
		Short: "Show the current state of a hunt session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HuntState

			path := fmt.Sprintf("/api/v1/hunt/sessions/%s", args[0])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newHuntPanCmd() *cobra.Command {
	var lon, lat float64

	cmd := &cobra.Command{
		Use:   "pan <session-id>",
		Short: "Rotate the session camera",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"lon": lon, "lat": lat}

			path := fmt.Sprintf("/api/v1/hunt/sessions/%s/pan", args[0])
			if err := client.Post(path, req, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Camera updated")
			return nil
		},
	}

	cmd.Flags().Float64Var(&lon, "lon", 0, "Camera longitude in degrees")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Camera latitude in degrees")

	return cmd
}

func newHuntClickCmd() *cobra.Command {
	var x, y, width, height float64

	cmd := &cobra.Command{
		Use:   "click <session-id>",
		Short: "Click at a viewport position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Down and up at the same point, so the server treats it
			// as a click rather than a drag
			req := map[string]any{
				"downX": x, "downY": y, "upX": x, "upY": y,
				"viewportWidth": width, "viewportHeight": height,
			}
			var result HuntClick

			path := fmt.Sprintf("/api/v1/hunt/sessions/%s/click", args[0])
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "Pointer X in pixels (required)")
	cmd.Flags().Float64Var(&y, "y", 0, "Pointer Y in pixels (required)")
	cmd.Flags().Float64Var(&width, "width", 1920, "Viewport width in pixels")
	cmd.Flags().Float64Var(&height, "height", 1080, "Viewport height in pixels")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

func newHuntTransitionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transition <session-id>",
		Short: "Finish the door transition early",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HuntState

			path := fmt.Sprintf("/api/v1/hunt/sessions/%s/transition", args[0])
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newHuntRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart <session-id>",
		Short: "Restart a hunt session from the first room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HuntState

			path := fmt.Sprintf("/api/v1/hunt/sessions/%s/restart", args[0])
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newHuntSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <session-id>",
		Short: "Show the final result of a finished hunt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HuntSummary

			path := fmt.Sprintf("/api/v1/hunt/sessions/%s/summary", args[0])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newHuntProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show which rooms this device has unlocked",
		RunE: func(cmd *cobra.Command, args []string) error {
			deviceID, err := cfg.DeviceID()
			if err != nil {
				return err
			}

			var result HuntProgress

			path := fmt.Sprintf("/api/v1/hunt/progress/%s", deviceID)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
