package view

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// 地図の初期表示（国レベルのズーム）
const (
	DefaultMapLatitude  = 20.5937
	DefaultMapLongitude = 78.9629
	DefaultMapZoom      = 4
	mapHeightPx         = 400
	osmTileURL          = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	osmAttribution      = "&copy; OpenStreetMap contributors"
)

// MapView はクライアント側の地図ウィジェットの設定
type MapView struct {
	Center      *geojson.Feature `json:"center"`
	Zoom        int              `json:"zoom"`
	TileURL     string           `json:"tileUrl"`
	Attribution string           `json:"attribution"`
	HeightPx    int              `json:"heightPx"`
}

// DefaultMapView はデフォルト中心・ズームの地図を返す
func DefaultMapView() MapView {
	return NewMapView(orb.Point{DefaultMapLongitude, DefaultMapLatitude}, DefaultMapZoom)
}

// NewMapView は中心点（GeoJSONなので[lng, lat]）とズームから地図を作る
func NewMapView(center orb.Point, zoom int) MapView {
	feature := geojson.NewFeature(center)
	feature.Properties["role"] = "center"
	return MapView{
		Center:      feature,
		Zoom:        zoom,
		TileURL:     osmTileURL,
		Attribution: osmAttribution,
		HeightPx:    mapHeightPx,
	}
}

// CenterLatLng は中心の緯度・経度を返す
func (m MapView) CenterLatLng() (lat, lng float64) {
	if m.Center == nil {
		return 0, 0
	}
	p, ok := m.Center.Geometry.(orb.Point)
	if !ok {
		return 0, 0
	}
	return p.Lat(), p.Lon()
}
