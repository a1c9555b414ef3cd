package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/cjeanneret/cardcam/internal/config"
)

// SettingsRows flattens the configuration into the rows shown on the
// Settings tab. Fields that do not apply to the selected camera or
// permission type are left out.
func SettingsRows(cfg *config.Config) []table.Row {
	rows := []table.Row{
		{"camera.type", cfg.Camera.Type},
	}
	if cfg.Camera.Name != "" {
		rows = append(rows, table.Row{"camera.name", cfg.Camera.Name})
	}
	switch cfg.Camera.Type {
	case config.CameraGPIORemote:
		rows = append(rows,
			table.Row{"camera.focus_pin", fmt.Sprint(cfg.Camera.FocusPin)},
			table.Row{"camera.shutter_pin", fmt.Sprint(cfg.Camera.ShutterPin)},
			table.Row{"camera.focus_delay", cfg.FocusDelay().String()},
			table.Row{"camera.shutter_delay", cfg.ShutterDelay().String()},
		)
	case config.CameraCommand:
		rows = append(rows,
			table.Row{"camera.command", strings.Join(cfg.Camera.Command, " ")},
			table.Row{"camera.output_dir", cfg.Camera.OutputDir},
		)
	case config.CameraMock:
		rows = append(rows, table.Row{"camera.fail_every", fmt.Sprint(cfg.Camera.FailEvery)})
	}
	if cfg.Camera.WidthPx > 0 && cfg.Camera.HeightPx > 0 {
		rows = append(rows, table.Row{"camera.resolution", fmt.Sprintf("%dx%d", cfg.Camera.WidthPx, cfg.Camera.HeightPx)})
	}
	rows = append(rows,
		table.Row{"camera.capture_timeout", cfg.CaptureTimeout().String()},
		table.Row{"permission.type", cfg.Permission.Type},
	)
	if cfg.Permission.Type == config.PermissionDevice {
		rows = append(rows, table.Row{"permission.device", cfg.Permission.Device})
	} else {
		rows = append(rows,
			table.Row{"permission.status", cfg.Permission.Status},
			table.Row{"permission.grant_on_request", fmt.Sprint(cfg.Permission.GrantOnRequest)},
		)
	}
	rows = append(rows,
		table.Row{"notify.desktop", fmt.Sprint(cfg.Notify.Desktop)},
		table.Row{"notify.notice_ttl", cfg.NoticeTTL().String()},
		table.Row{"defaults.debug_level", fmt.Sprint(cfg.Defaults.DebugLevel)},
		table.Row{"defaults.mock_gpio", fmt.Sprint(cfg.Defaults.MockGPIO)},
		table.Row{"defaults.start_tab", cfg.Defaults.StartTab},
	)
	return rows
}
