package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildArgsDefaults(t *testing.T) {
	t.Parallel()

	args := buildArgs("in.obj", "out.obj", DefaultParams())
	got := strings.Join(args, " ")
	want := "-o out.obj -S 2 -D -i -r 4 -p 4 -k 10 in.obj"
	if got != want {
		t.Errorf("buildArgs() = %q, want %q", got, want)
	}
}

func TestBuildArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Params)
		want    []string
		notWant []string
	}{
		{
			name:   "threads",
			mutate: func(p *Params) { p.Threads = 8 },
			want:   []string{"-t 8"},
		},
		{
			name:   "deterministic",
			mutate: func(p *Params) { p.Deterministic = true },
			want:   []string{"-d"},
		},
		{
			name:   "crease angle",
			mutate: func(p *Params) { p.CreaseAngle = 30 },
			want:   []string{"-c 30"},
		},
		{
			name:    "pure quad drops dominant flag",
			mutate:  func(p *Params) { p.PureQuad = true },
			notWant: []string{"-D"},
		},
		{
			name:    "extrinsic drops intrinsic flag",
			mutate:  func(p *Params) { p.Extrinsic = true },
			notWant: []string{"-i"},
		},
		{
			name:   "align to boundaries",
			mutate: func(p *Params) { p.AlignToBoundaries = true },
			want:   []string{"-b"},
		},
		{
			name:   "symmetry orders",
			mutate: func(p *Params) { p.Rosy = 6; p.Posy = 6 },
			want:   []string{"-r 6", "-p 6"},
		},
		{
			name:   "target vertex count",
			mutate: func(p *Params) { p.TargetVertexCount = 500 },
			want:   []string{"-v 500"},
		},
		{
			name:   "target face count",
			mutate: func(p *Params) { p.TargetFaceCount = 1000 },
			want:   []string{"-f 1000"},
		},
		{
			name:   "target edge length",
			mutate: func(p *Params) { p.TargetEdgeLength = 0.05 },
			want:   []string{"-s 0.05"},
		},
		{
			name: "edge length takes precedence over counts",
			mutate: func(p *Params) {
				p.TargetEdgeLength = 0.05
				p.TargetFaceCount = 1000
				p.TargetVertexCount = 500
			},
			want:    []string{"-s 0.05"},
			notWant: []string{"-f", "-v 500"},
		},
		{
			name: "face count takes precedence over vertex count",
			mutate: func(p *Params) {
				p.TargetFaceCount = 1000
				p.TargetVertexCount = 500
			},
			want:    []string{"-f 1000"},
			notWant: []string{"-v 500"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := DefaultParams()
			tt.mutate(&p)
			got := " " + strings.Join(buildArgs("in.obj", "out.obj", p), " ") + " "
			for _, w := range tt.want {
				if !strings.Contains(got, " "+w+" ") {
					t.Errorf("buildArgs() = %q, missing %q", got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, " "+nw+" ") {
					t.Errorf("buildArgs() = %q, should not contain %q", got, nw)
				}
			}
		})
	}
}

func TestBuildArgsInputLast(t *testing.T) {
	t.Parallel()

	args := buildArgs("input.obj", "output.obj", DefaultParams())
	if args[len(args)-1] != "input.obj" {
		t.Errorf("last arg = %q, want input path", args[len(args)-1])
	}
	if args[0] != "-o" || args[1] != "output.obj" {
		t.Errorf("args = %v, want -o output.obj first", args[:2])
	}
}

func TestCommandEngineMissingBinary(t *testing.T) {
	t.Parallel()

	e := NewCommandEngine("definitely-not-a-real-remesher")
	err := e.Remesh("in.obj", "out.obj", DefaultParams())

	var engErr *Error
	if !errors.As(err, &engErr) {
		t.Fatalf("Remesh() = %v, want *Error", err)
	}
	if engErr.Binary != "definitely-not-a-real-remesher" {
		t.Errorf("Error.Binary = %q", engErr.Binary)
	}
}

func TestErrorMessageIncludesOutput(t *testing.T) {
	t.Parallel()

	err := &Error{Binary: "InstantMeshes", Output: "Unable to open file\n", Err: errors.New("exit status 1")}
	msg := err.Error()
	if !strings.Contains(msg, "Unable to open file") {
		t.Errorf("Error() = %q, want engine output included", msg)
	}
	if !strings.Contains(msg, "exit status 1") {
		t.Errorf("Error() = %q, want underlying error included", msg)
	}
}
