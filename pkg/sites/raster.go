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

// rasterConfig is the opaque driver config decoded by the "std:raster"
// driver's DecodeConfig.
type rasterConfig struct {
	File       string `json:"file"`
	LayerIndex int    `json:"layer_index"`
}

func rasterDriver() Driver {
	return Driver{
		DecodeConfig: decodeRasterConfig,
		Create:       createRasterGenerator,
	}
}

func decodeRasterConfig(raw json.RawMessage) (interface{}, error) {
	cfg := rasterConfig{LayerIndex: 0}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.NewConfigurationError("decoding raster driver config: %v", err)
	}

	if cfg.File == "" {
		return nil, errors.NewConfigurationError("raster driver config missing required field \"file\"")
	}

	return cfg, nil
}

func createRasterGenerator(config interface{}) (Generator, error) {
	cfg, ok := config.(rasterConfig)
	if !ok {
		return nil, errors.NewDriverError("raster driver received unexpected config type %T", config)
	}

	ds, err := godal.Open(cfg.File)
	if err != nil {
		return nil, errors.NewDriverError("opening raster dataset %q: %v", cfg.File, err)
	}

	bands := ds.Bands()
	if cfg.LayerIndex < 0 || cfg.LayerIndex >= len(bands) {
		ds.Close()
		return nil, errors.NewDriverError("raster dataset %q has no band %d", cfg.File, cfg.LayerIndex)
	}

	band := bands[cfg.LayerIndex]
	structure := band.Structure()
	if structure.DataType != godal.Int32 {
		ds.Close()
		return nil, errors.NewDriverError("invalid raster data type: band %d of %q is not a 32-bit signed integer", cfg.LayerIndex, cfg.File)
	}

	noData, hasNoData := band.NoData()
	if !hasNoData {
		noData = 0
	}

	gt, err := ds.GeoTransform()
	if err != nil {
		ds.Close()
		return nil, errors.NewDriverError("reading geotransform of %q: %v", cfg.File, err)
	}

	glog.V(log.LevelDebug).Infof("opened raster dataset %q band %d (%dx%d, nodata=%v)", cfg.File, cfg.LayerIndex, structure.SizeX, structure.SizeY, noData)

	return &rasterGenerator{
		ds:           ds,
		band:         band,
		structure:    structure,
		noData:       int32(noData),
		geoTransform: gt,
		blockSizeX:   structure.BlockSizeX,
		blockSizeY:   structure.BlockSizeY,
	}, nil
}

// rasterGenerator streams Site values from a GDAL raster band,
// block-major then pixel-linear within each block, skipping pixels equal
// to the band's nodata value.
type rasterGenerator struct {
	ds        *godal.Dataset
	band      godal.Band
	structure godal.BandStructure

	noData       int32
	geoTransform [6]float64
	blockSizeX   int
	blockSizeY   int

	currBlockX, currBlockY int
	started                bool
	buffer                 []int32
	bufferXSize            int
	bufferYSize            int
	pxIdx                  int
	blockLoaded            bool
	exhausted              bool
}

// Next implements Generator.
func (g *rasterGenerator) Next() (Site, bool, error) {
	for {
		if g.exhausted {
			return Site{}, false, nil
		}

		if !g.blockLoaded {
			if err := g.loadNextBlock(); err != nil {
				g.exhausted = true
				return Site{}, false, err
			}
			if g.exhausted {
				return Site{}, false, nil
			}
		}

		for g.pxIdx < len(g.buffer) {
			v := g.buffer[g.pxIdx]
			idx := g.pxIdx
			g.pxIdx++

			if v == g.noData {
				continue
			}

			px := g.currBlockX*g.blockSizeX + idx%g.bufferXSize
			py := g.currBlockY*g.blockSizeY + idx/g.bufferXSize

			lon, lat := g.pixelCenter(px, py)

			return Site{ID: v, Lon: lon, Lat: lat}, true, nil
		}

		g.blockLoaded = false
	}
}

// loadNextBlock advances to the next block in block-major order and
// reads it into the internal buffer.
func (g *rasterGenerator) loadNextBlock() error {
	blocksX := (g.structure.SizeX + g.blockSizeX - 1) / g.blockSizeX
	blocksY := (g.structure.SizeY + g.blockSizeY - 1) / g.blockSizeY

	if !g.started {
		g.started = true
	} else {
		g.currBlockX++
		if g.currBlockX >= blocksX {
			g.currBlockX = 0
			g.currBlockY++
		}
	}

	if g.currBlockY >= blocksY {
		g.exhausted = true
		return nil
	}

	xOff := g.currBlockX * g.blockSizeX
	yOff := g.currBlockY * g.blockSizeY

	bufX := g.blockSizeX
	if xOff+bufX > g.structure.SizeX {
		bufX = g.structure.SizeX - xOff
	}

	bufY := g.blockSizeY
	if yOff+bufY > g.structure.SizeY {
		bufY = g.structure.SizeY - yOff
	}

	buf := make([]int32, bufX*bufY)
	if err := g.band.Read(xOff, yOff, buf, bufX, bufY); err != nil {
		return errors.NewDriverError("reading raster block (%d,%d): %v", g.currBlockX, g.currBlockY, err)
	}

	g.buffer = buf
	g.bufferXSize = bufX
	g.bufferYSize = bufY
	g.pxIdx = 0
	g.blockLoaded = true

	return nil
}

// pixelCenter computes the geographic center of pixel (px, py): the full
// geotransform applied to the pixel's top-left corner, offset inward by
// half a pixel. gt[5] is negative for north-up rasters, so adding half of
// it moves the latitude down toward the center.
func (g *rasterGenerator) pixelCenter(px, py int) (geo.GeoDeg, geo.GeoDeg) {
	gt := g.geoTransform
	x, y := float64(px), float64(py)

	lon := gt[0] + x*gt[1] + y*gt[2] + gt[1]/2.0
	lat := gt[3] + x*gt[4] + y*gt[5] + gt[5]/2.0

	return geo.FromFloat64(lon), geo.FromFloat64(lat)
}

// Close implements Generator.
func (g *rasterGenerator) Close() error {
	return g.ds.Close()
}
