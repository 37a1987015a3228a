// Package pointcsv imports CSV point lists into robot routines as motion
// statements and exports routine targets back to CSV.
package pointcsv

import (
	"github.com/biotinker/pointcsv/host"
	"go.viam.com/rdk/logging"
)

// Converter moves points between CSV text and the routines of a host.
// All options are passed per call; a Converter holds no state between
// operations besides its collaborators.
type Converter struct {
	logger logging.Logger
	host   host.Host

	writer *StatementWriter
	reader *StatementReader
}

// NewConverter returns a Converter for the given host. strategies override
// the joint assignment order used on import.
func NewConverter(h host.Host, logger logging.Logger, strategies ...JointStrategy) *Converter {
	return &Converter{
		logger: logger,
		host:   h,
		writer: NewStatementWriter(logger, strategies...),
		reader: NewStatementReader(logger),
	}
}

func (c *Converter) activeRobot() (host.Robot, error) {
	robot, ok := c.host.ActiveRobot()
	if !ok || robot == nil {
		return nil, ErrNoActiveRobot
	}
	return robot, nil
}

func (c *Converter) activeRoutine() (host.Routine, error) {
	routine, ok := c.host.ActiveRoutine()
	if !ok || routine == nil {
		return nil, ErrNoActiveRoutine
	}
	return routine, nil
}
