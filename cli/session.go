package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/biotinker/pointcsv"
	"github.com/biotinker/pointcsv/host"
	"github.com/biotinker/pointcsv/internal/config"
	"github.com/biotinker/pointcsv/internal/creds"
	"github.com/biotinker/pointcsv/program"
	"github.com/biotinker/pointcsv/viamhost"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/robot/client"
	"go.viam.com/utils/rpc"
)

// sessionFlags are shared by every subcommand and override the config file.
type sessionFlags struct {
	program   string
	store     string
	storeKind string
	routine   string
	creds     string
	arm       string
	debug     bool
	json      bool
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.program, "program", "", "program to work on (default from config)")
	pf.StringVar(&f.store, "store", "", "program directory or SQLite database path")
	pf.StringVar(&f.storeKind, "store-kind", "", "program store kind: file or sqlite")
	pf.StringVar(&f.routine, "active", "", "select this routine before running")
	pf.StringVar(&f.creds, "creds", "", "path to robot credentials JSON file; connects to a Viam machine")
	pf.StringVar(&f.arm, "arm", "", "arm component used as the active robot")
	pf.BoolVar(&f.debug, "debug", false, "debug logging")
	pf.BoolVar(&f.json, "json", false, "print the operation report as JSON")
}

// session is one CLI invocation: a loaded program, its store and, when
// credentials are given, a machine connection.
type session struct {
	cfg     *config.Config
	logger  logging.Logger
	flags   *sessionFlags
	store   program.Store
	program *program.Program
	robot   host.Robot

	closers []func() error
}

func openSession(ctx context.Context, flags *sessionFlags) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags.apply(cfg)

	logger := logging.NewLogger("pointcsv")
	if flags.debug {
		logger = logging.NewDebugLogger("pointcsv")
	}

	s := &session{cfg: cfg, logger: logger, flags: flags}
	if err := s.openStore(); err != nil {
		return nil, err
	}

	s.program, err = program.LoadOrCreate(ctx, s.store, cfg.Program)
	if err != nil {
		s.close()
		return nil, fmt.Errorf("load program: %w", err)
	}
	if s.program.Robot == nil && cfg.Robot.Name != "" {
		s.program.Robot = &program.RobotInfo{Name: cfg.Robot.Name, JointCount: cfg.Robot.JointCount}
	}

	if cfg.Robot.Creds != "" {
		if err := s.connect(ctx); err != nil {
			s.close()
			return nil, err
		}
	}
	return s, nil
}

func (f *sessionFlags) apply(cfg *config.Config) {
	if f.program != "" {
		cfg.Program = f.program
	}
	if f.store != "" {
		cfg.Store.Path = f.store
	}
	if f.storeKind != "" {
		cfg.Store.Kind = f.storeKind
	}
	if f.creds != "" {
		cfg.Robot.Creds = f.creds
	}
	if f.arm != "" {
		cfg.Robot.Arm = f.arm
	}
}

func (s *session) openStore() error {
	switch s.cfg.Store.Kind {
	case config.StoreSQLite:
		db, err := program.OpenSQLite(s.cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open program store: %w", err)
		}
		s.store = db
		s.closers = append(s.closers, db.Close)
	case config.StoreFile:
		s.store = program.NewFileStore(s.cfg.Store.Path)
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownStore, s.cfg.Store.Kind)
	}
	return nil
}

func (s *session) connect(ctx context.Context) error {
	robotCreds, err := creds.Load(s.cfg.Robot.Creds)
	if err != nil {
		return err
	}

	machine, err := client.New(
		ctx,
		robotCreds.Address,
		s.logger,
		client.WithDialOptions(rpc.WithEntityCredentials(
			robotCreds.EntityID,
			rpc.Credentials{
				Type:    rpc.CredentialsTypeAPIKey,
				Payload: robotCreds.APIKey,
			})),
	)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", robotCreds.Address, err)
	}
	s.closers = append(s.closers, func() error { return machine.Close(context.Background()) })
	s.logger.Info("Connected to robot")

	s.robot, err = viamhost.FromMachine(ctx, machine, s.cfg.Robot.Arm, s.logger)
	if err != nil {
		return err
	}
	return nil
}

// selectRoutine applies --active. create allows a missing routine to be
// added, which only makes sense for imports.
func (s *session) selectRoutine(create bool) error {
	name := s.flags.routine
	if name == "" {
		return nil
	}
	if _, ok := s.program.FindRoutine(name); !ok {
		if !create {
			return fmt.Errorf("%w: %q", program.ErrRoutineNotFound, name)
		}
		if _, err := s.program.AddRoutine(name); err != nil {
			return err
		}
	}
	return s.program.SetActiveRoutine(name)
}

func (s *session) converter() *pointcsv.Converter {
	return pointcsv.NewConverter(program.NewHost(s.program, s.robot), s.logger)
}

func (s *session) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.program); err != nil {
		return fmt.Errorf("save program: %w", err)
	}
	return nil
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Warnf("close: %v", err)
		}
	}
	s.closers = nil
}

// report prints an operation result, as JSON with --json.
func (s *session) report(summary string, fields map[string]interface{}, diags []pointcsv.Diagnostic) error {
	if s.flags.json {
		st, err := structpb.NewStruct(fields)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		out, err := protojson.MarshalOptions{Multiline: true}.Marshal(st)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Fprintln(os.Stderr, summary)
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "  %s\n", d)
	}
	return nil
}

func selectionHint(err error) error {
	if errors.Is(err, pointcsv.ErrNoActiveRoutine) {
		return fmt.Errorf("%w; pick one with --active", err)
	}
	if errors.Is(err, pointcsv.ErrNoActiveRobot) {
		return fmt.Errorf("%w; set [robot] in the config or pass --creds", err)
	}
	return err
}
