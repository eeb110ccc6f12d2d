// Copyright (c) 2026 Clipstream. All rights reserved.

package schema

// CoreVideoAssetTable represents the 'core.videoasset' table
type CoreVideoAssetTable struct {
	Table           string
	ID              string
	OwnerID         string
	VideoURL        string
	ThumbnailURL    string
	Title           string
	Description     string
	DurationSeconds string
	ViewCount       string
	IsPublished     string
	CreatedAt       string
	UpdatedAt       string
}

// CoreVideoAsset is the schema definition for core.videoasset
var CoreVideoAsset = CoreVideoAssetTable{
	Table:           "core.videoasset",
	ID:              "id",
	OwnerID:         "ownerid",
	VideoURL:        "videourl",
	ThumbnailURL:    "thumbnailurl",
	Title:           "title",
	Description:     "description",
	DurationSeconds: "durationseconds",
	ViewCount:       "viewcount",
	IsPublished:     "ispublished",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

func (t CoreVideoAssetTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.VideoURL, t.ThumbnailURL, t.Title, t.Description,
		t.DurationSeconds, t.ViewCount, t.IsPublished, t.CreatedAt, t.UpdatedAt,
	}
}
