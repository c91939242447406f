package model

type LeaderboardEntry struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Score    uint64 `json:"score"`
	Progress int    `json:"progress"`
	Rank     int    `json:"rank"`
}

type GetLeaderboardRequest struct {
	HuntID string `json:"huntId"`
}

type GetLeaderboardResponse struct {
	HuntID      string             `json:"huntId"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
