// cmd/panel/validate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/ky028-panel/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Parse and validate a panel config without opening any device.
Prints the effective settings, defaults included.

Exit codes:
  0 - config is valid
  1 - config is invalid (details on stderr)`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Interval: %dms (tick %dms)\n", cfg.Panel.IntervalMs, cfg.Panel.TickMs)
	fmt.Fprintf(out, "  Sensor:   %s\n", sensorSummary(cfg.Sensor))
	fmt.Fprintf(out, "  Display:  %s %q\n", cfg.Display.Driver, cfg.Display.Title)
	fmt.Fprintf(out, "  Log:      %s/%s\n", cfg.Log.Level, cfg.Log.Format)
	return nil
}

func sensorSummary(s config.SensorConfig) string {
	switch s.Driver {
	case config.SensorPeriph:
		return fmt.Sprintf("periph ads1115@0x%02x ch%d, pin %s",
			s.Periph.ADCAddress, s.Periph.ADCChannel, s.Periph.DigitalPin)
	case config.SensorModbus:
		return fmt.Sprintf("modbus %s %s unit %d",
			s.Modbus.Transport, s.Modbus.Endpoint, s.Modbus.UnitID)
	default:
		return fmt.Sprintf("sim seed %d", s.Sim.Seed)
	}
}
