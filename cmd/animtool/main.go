// animtool is a CLI utility for inspecting skinned meshes and playing
// their animations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/skelanim/internal/assets"
	"github.com/Faultbox/skelanim/internal/config"
	"github.com/Faultbox/skelanim/internal/engine/model"
	"github.com/Faultbox/skelanim/internal/logger"
	"github.com/Faultbox/skelanim/pkg/math"
)

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	err := run(os.Args[1], os.Args[2:], os.Stdout)
	logger.Sync()
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, out io.Writer) error {
	switch command {
	case "info":
		return cmdInfo(args, out)
	case "list", "ls":
		return cmdList(args, out)
	case "play":
		return cmdPlay(args, out)
	case "pose":
		return cmdPose(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `animtool - skeletal animation utility

Usage:
  animtool <command> [options] <args>

Commands:
  info <mesh>                 Show skeleton and vertex summary
  list                        List meshes and animations in the asset directory
  play <mesh> <anim>          Play an animation, printing joint positions per tick
  pose <mesh> <anim> <frame>  Print joints and skinned vertices at a frame

Options (all commands):
  -config <file>   Config file
  -assets <dir>    Asset directory
  -debug           Debug logging
  -ticks N         Ticks to play
  -dt seconds      Seconds per tick
  -timescale X     Playback speed multiplier
  -no-loop         Hold the last keyframe

Examples:
  animtool info arm
  animtool play -ticks 10 -dt 0.1 arm swing
  animtool pose arm swing 5`)
}

// session is the state shared by every command after flag parsing.
type session struct {
	cfg  *config.Config
	lib  *assets.Library
	log  *zap.Logger
	args []string
}

func setup(name string, args []string, minArgs int, usage string) (*session, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: animtool %s: %v", errUsage, usage, err)
	}
	if fs.NArg() < minArgs {
		return nil, fmt.Errorf("%w: animtool %s", errUsage, usage)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, err
	}

	return &session{
		cfg:  cfg,
		lib:  assets.NewLibrary(cfg.Assets.Dir, logger.Named("assets")),
		log:  logger.Named(name),
		args: fs.Args(),
	}, nil
}

// newModel loads a mesh and, if animName is set, binds that animation.
func (s *session) newModel(meshName, animName string) (*model.Model, error) {
	m, err := s.lib.Mesh(meshName)
	if err != nil {
		return nil, err
	}
	mdl, err := model.New(m,
		model.WithName(meshName),
		model.WithLogger(logger.Named("model")),
		model.WithTimeScale(s.cfg.Playback.TimeScale),
		model.WithLooping(s.cfg.Playback.Looping),
	)
	if err != nil {
		return nil, err
	}
	if animName == "" {
		return mdl, nil
	}

	anim, err := s.lib.Animation(animName)
	if err != nil {
		return nil, err
	}
	if err := mdl.AddAnimation(anim); err != nil {
		return nil, err
	}
	if err := mdl.BeginAnimation(anim.Name()); err != nil {
		return nil, err
	}
	return mdl, nil
}

func cmdInfo(args []string, out io.Writer) error {
	s, err := setup("info", args, 1, "info <mesh>")
	if err != nil {
		return err
	}
	m, err := s.lib.Mesh(s.args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Mesh:     %s\n", m.Name())
	fmt.Fprintf(out, "Joints:   %d\n", m.JointCount())
	fmt.Fprintf(out, "Vertices: %d\n", m.VertexCount())
	fmt.Fprintln(out)

	counts := make([]int, m.JointCount())
	for _, v := range m.Vertices() {
		for _, w := range v.Weights {
			counts[w.Joint]++
		}
	}

	fmt.Fprintln(out, "Skeleton:")
	for i, j := range m.Joints() {
		parent := "-"
		if j.HasParent() {
			parent = m.Joint(j.Parent).Name
		}
		fmt.Fprintf(out, "  %3d %-16s parent=%-16s start=%s vertices=%d\n",
			i, j.Name, parent, formatVec(j.Start), counts[i])
	}
	return nil
}

func cmdList(args []string, out io.Writer) error {
	s, err := setup("list", args, 0, "list")
	if err != nil {
		return err
	}

	meshes, err := s.lib.MeshNames()
	if err != nil {
		return err
	}
	anims, err := s.lib.AnimationNames()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Assets in %s\n", s.lib.Dir())
	fmt.Fprintln(out, "Meshes:")
	for _, name := range meshes {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintln(out, "Animations:")
	for _, name := range anims {
		a, err := s.lib.Animation(name)
		if err != nil {
			s.log.Warn("skipping animation", zap.String("name", name), zap.Error(err))
			continue
		}
		fmt.Fprintf(out, "  %-16s %d keyframes, %.2fs @ %g fps\n", name, len(a.Keyframes()), a.Length(), a.FPS())
	}
	return nil
}

func cmdPlay(args []string, out io.Writer) error {
	s, err := setup("play", args, 2, "play [options] <mesh> <anim>")
	if err != nil {
		return err
	}
	mdl, err := s.newModel(s.args[0], s.args[1])
	if err != nil {
		return err
	}

	dt := s.cfg.Playback.TickDuration()
	s.log.Info("playing",
		zap.String("mesh", s.args[0]),
		zap.String("animation", s.args[1]),
		zap.Int("ticks", s.cfg.Playback.Ticks),
		zap.Float32("dt", dt))

	for tick := 0; tick <= s.cfg.Playback.Ticks; tick++ {
		if tick > 0 {
			mdl.IncrementAnimationTime(dt)
		}
		fmt.Fprintf(out, "tick %d t=%.3f %s\n", tick, mdl.AnimationTime(), mdl.State())
		for i, j := range mdl.Joints() {
			pos := mdl.JointWorldTransform(i).Translation
			fmt.Fprintf(out, "  %-16s %s\n", j.Name, formatVec(pos.Point()))
		}
	}
	return nil
}

func cmdPose(args []string, out io.Writer) error {
	s, err := setup("pose", args, 3, "pose [options] <mesh> <anim> <frame>")
	if err != nil {
		return err
	}
	frame, err := strconv.ParseFloat(s.args[2], 32)
	if err != nil {
		return fmt.Errorf("%w: invalid frame %q", errUsage, s.args[2])
	}
	mdl, err := s.newModel(s.args[0], s.args[1])
	if err != nil {
		return err
	}

	mdl.SetFrame(float32(frame))
	mdl.ApplyAnimation()

	fmt.Fprintf(out, "Frame %g (t=%.3f)\n", frame, mdl.AnimationTime())
	fmt.Fprintln(out, "Joints:")
	for i, j := range mdl.Joints() {
		fmt.Fprintf(out, "  %3d %-16s start=%s end=%s\n", i, j.Name, formatVec(j.Start), formatVec(j.End))
	}
	fmt.Fprintln(out, "Vertices:")
	for i, v := range mdl.Vertices() {
		fmt.Fprintf(out, "  %3d pos=%s norm=%s\n", i, formatVec(v.Pos), formatVec(v.Norm))
	}
	return nil
}

func formatVec(v math.Vec4) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
