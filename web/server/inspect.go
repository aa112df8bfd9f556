package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/geometry"
	"github.com/df07/go-offline-pathtracer/pkg/material"
	"github.com/df07/go-offline-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecToArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractTextureInfo describes a texture without evaluating it
func extractTextureInfo(tex material.Texture) map[string]interface{} {
	switch t := tex.(type) {
	case *material.SolidColor:
		return map[string]interface{}{
			"type":  "solid",
			"color": hexColor(t.Color),
		}
	case *material.CheckerTexture:
		return map[string]interface{}{
			"type": "checker",
			"odd":  extractTextureInfo(t.Odd),
			"even": extractTextureInfo(t.Even),
		}
	case *material.NoiseTexture:
		return map[string]interface{}{
			"type":  "noise",
			"scale": t.Scale,
		}
	default:
		return map[string]interface{}{"type": "unknown"}
	}
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = extractTextureInfo(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecToArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecToArray(geom.Center)
		properties["radius"] = geom.Radius
		if geom.Radius < 0 {
			properties["hollow"] = true
		}
		return "sphere", properties

	case *geometry.MovingSphere:
		properties["center0"] = vecToArray(geom.Center0)
		properties["center1"] = vecToArray(geom.Center1)
		properties["time0"] = geom.Time0
		properties["time1"] = geom.Time1
		properties["radius"] = geom.Radius
		return "moving_sphere", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains the first hit along an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape // nil if no single shape matched the hit distance
}

// inspectPixel casts a ray through the centre of a pixel, row 0 at the top,
// and reports the closest object it hits
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (InspectResult, error) {
	if sceneObj.Root == nil {
		if err := sceneObj.Preprocess(); err != nil {
			return InspectResult{}, err
		}
	}

	width, height := sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height
	s := (float64(pixelX) + 0.5) / float64(width)
	t := (float64(height-1-pixelY) + 0.5) / float64(height)

	// Fixed seed so lens and shutter samples repeat between requests
	sampler := core.NewSeededSampler(0)
	ray := sceneObj.Camera.GetRay(s, t, sampler)

	hit, isHit := sceneObj.Root.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false}, nil
	}

	// The accelerator returns only the hit record, so find the shape that produced it
	for _, shape := range sceneObj.Shapes {
		if shapeHit, ok := shape.Hit(ray, 0.001, hit.T+0.001); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Shape: shape}, nil
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	req := &RenderRequest{Scene: values.Get("scene"), Samples: 1, Seed: 42}
	if req.Scene == "" {
		req.Scene = "random"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 200, 1, 2000); err != nil {
		return badRequest(c, err)
	}
	cfg, err := req.toConfig()
	if err != nil {
		return badRequest(c, err)
	}
	sceneObj, err := cfg.NewScene()
	if err != nil {
		return badRequest(c, err)
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		return badRequest(c, fmt.Errorf("invalid x coordinate"))
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		return badRequest(c, fmt.Errorf("invalid y coordinate"))
	}
	if pixelX < 0 || pixelX >= sceneObj.SamplingConfig.Width || pixelY < 0 || pixelY >= sceneObj.SamplingConfig.Height {
		return badRequest(c, fmt.Errorf("pixel coordinates out of bounds"))
	}

	result, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if !result.Hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecToArray(result.HitRecord.Point),
		Normal:       vecToArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
