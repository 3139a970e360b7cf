package dto

// ListUsersRequest holds admin list pagination
type ListUsersRequest struct {
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"min=0,max=500"`
}

// AdminOverview bundles the two user lists shown on the admin page
type AdminOverview struct {
	Users              []UserResponse `json:"users"`
	UnconfirmedWorkers []UserResponse `json:"unconfirmed_workers"`
}

// ThemeRequest sets the session theme preference
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}
