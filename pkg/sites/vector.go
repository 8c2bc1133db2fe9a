// Copyright 2024 The geobatch Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file  except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the  License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sites

import (
	"encoding/json"

	"github.com/airbusgeo/godal"
	"github.com/golang/glog"

	"github.com/geobatch/geobatch/pkg/errors"
	"github.com/geobatch/geobatch/pkg/geo"
	"github.com/geobatch/geobatch/pkg/log"
)

// vectorConfig is the opaque driver config decoded by the "std:vector"
// driver's DecodeConfig.
type vectorConfig struct {
	File      string `json:"file"`
	SiteIDKey string `json:"site_id_key"`
}

func vectorDriver() Driver {
	return Driver{
		DecodeConfig: decodeVectorConfig,
		Create:       createVectorGenerator,
	}
}

func decodeVectorConfig(raw json.RawMessage) (interface{}, error) {
	cfg := vectorConfig{SiteIDKey: "ID"}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.NewConfigurationError("decoding vector driver config: %v", err)
	}

	if cfg.File == "" {
		return nil, errors.NewConfigurationError("vector driver config missing required field \"file\"")
	}

	return cfg, nil
}

func createVectorGenerator(config interface{}) (Generator, error) {
	cfg, ok := config.(vectorConfig)
	if !ok {
		return nil, errors.NewDriverError("vector driver received unexpected config type %T", config)
	}

	ds, err := godal.Open(cfg.File)
	if err != nil {
		return nil, errors.NewDriverError("opening vector dataset %q: %v", cfg.File, err)
	}

	glog.V(log.LevelDebug).Infof("opened vector dataset %q with site id key %q", cfg.File, cfg.SiteIDKey)

	return &vectorGenerator{
		ds:        ds,
		siteIDKey: cfg.SiteIDKey,
		layers:    ds.Layers(),
	}, nil
}

// vectorGenerator streams Site values from a GDAL vector dataset's point
// layers, in layer declaration order, skipping features that are not
// points or whose id field is missing or not an integer.
type vectorGenerator struct {
	ds        *godal.Dataset
	siteIDKey string
	layers    []godal.Layer
	layerIdx  int
}

// Next implements Generator.
func (g *vectorGenerator) Next() (Site, bool, error) {
	for g.layerIdx < len(g.layers) {
		feat := g.layers[g.layerIdx].NextFeature()
		if feat == nil {
			g.layerIdx++
			continue
		}

		site, accepted := featureToSite(feat, g.siteIDKey)
		if !accepted {
			glog.V(log.LevelTrace).Infof("skipping feature in layer %d: not a point or missing/invalid id", g.layerIdx)
			continue
		}

		return site, true, nil
	}

	return Site{}, false, nil
}

// Close implements Generator.
func (g *vectorGenerator) Close() error {
	return g.ds.Close()
}

func featureToSite(feat *godal.Feature, siteIDKey string) (Site, bool) {
	geom := feat.Geometry()
	if geom == nil || geom.Type() != godal.GTPoint {
		return Site{}, false
	}

	field, ok := feat.Fields()[siteIDKey]
	if !ok || field.Type() != godal.FTInt {
		return Site{}, false
	}
	id := int32(field.Int())

	// A point's bounding box degenerates to the point itself.
	bounds, err := geom.Bounds()
	if err != nil {
		return Site{}, false
	}
	x, y := bounds[0], bounds[1]

	return Site{ID: id, Lon: geo.FromFloat64(x), Lat: geo.FromFloat64(y)}, true
}
