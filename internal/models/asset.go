package models

import (
	"fmt"
	"strings"
)

// AssetCategory groups uploaded images; each category carries a fixed bounding box
type AssetCategory string

const (
	AssetProduct       AssetCategory = "product"
	AssetBrand         AssetCategory = "brand"
	AssetCategoryImage AssetCategory = "category"
	AssetSlide         AssetCategory = "slide"
)

// BoundingBox is the maximum width and height, in pixels, an optimized image may occupy
type BoundingBox struct {
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

var boundingBoxes = map[AssetCategory]BoundingBox{
	AssetProduct:       {MaxWidth: 800, MaxHeight: 800},
	AssetBrand:         {MaxWidth: 400, MaxHeight: 400},
	AssetCategoryImage: {MaxWidth: 1200, MaxHeight: 800},
	AssetSlide:         {MaxWidth: 1920, MaxHeight: 1080},
}

func (c AssetCategory) BoundingBox() BoundingBox {
	return boundingBoxes[c]
}

func (c AssetCategory) Valid() bool {
	_, ok := boundingBoxes[c]
	return ok
}

// Folder is the object store prefix holding assets of this category
func (c AssetCategory) Folder() string {
	return string(c) + "s"
}

func ParseAssetCategory(s string) (AssetCategory, error) {
	c := AssetCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown asset category %q", s)
	}
	return c, nil
}

// AssetCategories lists every category in a stable order
func AssetCategories() []AssetCategory {
	return []AssetCategory{AssetProduct, AssetBrand, AssetCategoryImage, AssetSlide}
}
