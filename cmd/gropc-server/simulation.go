package main

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/gropc-project/gropc-go/pkg/adapter"
)

// Simulated nodes served with -simulate.
const (
	simCounter     = "ns=2;s=Sim.Counter"
	simTemperature = "ns=2;s=Sim.Temperature"
	simRunning     = "ns=2;s=Sim.Running"
	simMode        = "ns=2;s=Sim.Mode"
	simSetpoint    = "ns=2;s=Sim.Setpoint"
)

var simModes = []string{"IDLE", "RAMP", "RUN", "STOP"}

// newSimulation returns an in-memory adapter with the simulated nodes.
func newSimulation() *adapter.Memory {
	m := adapter.NewMemory()
	m.Define(simCounter, adapter.DataTypeInt32, "0")
	m.Define(simTemperature, adapter.DataTypeDouble, "20")
	m.Define(simRunning, adapter.DataTypeBoolean, "false")
	m.Define(simMode, adapter.DataTypeString, simModes[0])
	m.Define(simSetpoint, adapter.DataTypeDouble, "21.5")
	return m
}

// runSimulation changes the simulated values on every tick until ctx ends.
// Sim.Setpoint only changes through client writes.
func runSimulation(ctx context.Context, m *adapter.Memory, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("simulation started", "interval", interval, "nodes", m.Nodes())

	for tick := 1; ; tick++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		for node, value := range simulatedValues(tick) {
			if err := m.Set(node, value); err != nil {
				logger.Warn("simulation update failed", "node", node, "error", err)
			}
		}
	}
}

// simulatedValues returns the node values for one tick.
func simulatedValues(tick int) map[string]string {
	temp := 20 + 5*math.Sin(float64(tick)/10)
	values := map[string]string{
		simCounter:     strconv.Itoa(tick),
		simTemperature: strconv.FormatFloat(math.Round(temp*100)/100, 'f', -1, 64),
	}
	// Mode and running flag change every fifth tick.
	if tick%5 == 0 {
		mode := simModes[(tick/5)%len(simModes)]
		values[simMode] = mode
		values[simRunning] = strconv.FormatBool(mode == "RUN" || mode == "RAMP")
	}
	return values
}
