package main

import (
	"fmt"
	"io"

	"github.com/robotalks/create2/pkg/oi"
	"github.com/robotalks/create2/pkg/oi/sensors"
)

const (
	rule   = "================================================"
	divide = "------------------------------------------------"
)

// dashboard prints block 100 readings grouped by subsystem.
func dashboard(w io.Writer, readings sensors.Readings) {
	v := readings.Map()
	section := func(title string) {
		fmt.Fprintln(w, divide)
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, divide)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Sensors from left to right")
	fmt.Fprintln(w, divide)
	fmt.Fprintf(w, "  IR: %d %d\n", v[sensors.IROpcodeLeft], v[sensors.IROpcodeRight])
	fmt.Fprintf(w, "  Bump: %d %d %d %d %d %d\n",
		v[sensors.LightBumpLeft], v[sensors.LightBumpFrontLeft], v[sensors.LightBumpCenterLeft],
		v[sensors.LightBumpCenterRight], v[sensors.LightBumpFrontRight], v[sensors.LightBumpRight])
	fmt.Fprintf(w, "  Cliff: %d %d %d %d\n",
		v[sensors.CliffLeft], v[sensors.CliffFrontLeft], v[sensors.CliffFrontRight], v[sensors.CliffRight])
	drops := v[sensors.BumpsWheeldrops]
	fmt.Fprintf(w, "  Wheel drops: %t %t\n", drops&oi.WheelDropLeft != 0, drops&oi.WheelDropRight != 0)
	fmt.Fprintf(w, "  Encoder: %d %d\n", v[sensors.EncoderCountsLeft], v[sensors.EncoderCountsRight])
	temp := v[sensors.Temperature]
	fmt.Fprintf(w, "  Temperature: %d C / %.1f F\n", temp, float64(temp)*9/5+32)
	over := v[sensors.Overcurrents]
	fmt.Fprintf(w, "  Wheel Overcurrents: %t %t\n", over&oi.OvercurrentLeftWheel != 0, over&oi.OvercurrentRightWheel != 0)

	section("Electrical:")
	percent := 0.0
	if capacity := v[sensors.BatteryCapacity]; capacity > 0 {
		percent = float64(v[sensors.BatteryCharge]) * 100 / float64(capacity)
	}
	fmt.Fprintf(w, "  Battery: %.2f%% at %.3f V\n", percent, float64(v[sensors.Voltage])/1000)
	fmt.Fprintf(w, "  Current: %.3f A\n", float64(v[sensors.Current])/1000)
	fmt.Fprintf(w, "  Motor Current: %.3f A %.3f A\n",
		float64(v[sensors.LeftMotorCurrent])/1000, float64(v[sensors.RightMotorCurrent])/1000)
	fmt.Fprintf(w, "  Charging: %s\n", oi.ChargingState(v[sensors.ChargingState]))

	section("Commands:")
	fmt.Fprintf(w, "  Motors: %d %d mm/sec\n", v[sensors.RequestedVelocityRight], v[sensors.RequestedVelocityLeft])
	fmt.Fprintf(w, "  Turn Radius: %d mm\n", v[sensors.RequestedRadius])
}
