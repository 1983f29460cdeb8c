package dto

type UpdateSettingsRequest struct {
	Theme     *string `json:"theme,omitempty"`
	Wallpaper *string `json:"wallpaper,omitempty"`
}
