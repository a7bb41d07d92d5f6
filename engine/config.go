package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ParamsConfig is the JSON file form of Params used by the command
// line tools. All fields are optional pointers so a partial config
// only overrides what it names and everything else keeps its default.
type ParamsConfig struct {
	TargetVertexCount *int     `json:"target_vertex_count,omitempty"`
	TargetFaceCount   *int     `json:"target_face_count,omitempty"`
	TargetEdgeLength  *float64 `json:"target_edge_length,omitempty"`
	Rosy              *int     `json:"rosy,omitempty"`
	Posy              *int     `json:"posy,omitempty"`
	CreaseAngle       *float64 `json:"crease_angle,omitempty"`
	Extrinsic         *bool    `json:"extrinsic,omitempty"`
	AlignToBoundaries *bool    `json:"align_to_boundaries,omitempty"`
	SmoothIterations  *int     `json:"smooth_iterations,omitempty"`
	KnnPoints         *int     `json:"knn_points,omitempty"`
	PureQuad          *bool    `json:"pure_quad,omitempty"`
	Deterministic     *bool    `json:"deterministic,omitempty"`
	Threads           *int     `json:"threads,omitempty"`
}

// LoadParamsConfig loads a ParamsConfig from a JSON file. The path
// must carry a .json extension and stay under the max file size.
// Omitted fields stay nil, so partial configs are safe.
func LoadParamsConfig(path string) (*ParamsConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("params file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat params file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("params file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}

	var cfg ParamsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse params file: %w", err)
	}
	return &cfg, nil
}

// Apply overlays the config's set fields onto base and returns the
// result.
func (c *ParamsConfig) Apply(base Params) Params {
	if c == nil {
		return base
	}
	if c.TargetVertexCount != nil {
		base.TargetVertexCount = *c.TargetVertexCount
	}
	if c.TargetFaceCount != nil {
		base.TargetFaceCount = *c.TargetFaceCount
	}
	if c.TargetEdgeLength != nil {
		base.TargetEdgeLength = *c.TargetEdgeLength
	}
	if c.Rosy != nil {
		base.Rosy = *c.Rosy
	}
	if c.Posy != nil {
		base.Posy = *c.Posy
	}
	if c.CreaseAngle != nil {
		base.CreaseAngle = *c.CreaseAngle
	}
	if c.Extrinsic != nil {
		base.Extrinsic = *c.Extrinsic
	}
	if c.AlignToBoundaries != nil {
		base.AlignToBoundaries = *c.AlignToBoundaries
	}
	if c.SmoothIterations != nil {
		base.SmoothIterations = *c.SmoothIterations
	}
	if c.KnnPoints != nil {
		base.KnnPoints = *c.KnnPoints
	}
	if c.PureQuad != nil {
		base.PureQuad = *c.PureQuad
	}
	if c.Deterministic != nil {
		base.Deterministic = *c.Deterministic
	}
	if c.Threads != nil {
		base.Threads = *c.Threads
	}
	return base
}
