package entity

// LeaderboardEntry представляет строку лидерборда, агрегированную по
// завершённым попыткам пользователя. Заполняется сырым SQL-запросом.
type LeaderboardEntry struct {
	UserID      uint   `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Country     string `json:"country"`
	Attempts    int64  `json:"attempts"`
	Passes      int64  `json:"passes"`
	TotalReward int64  `json:"total_reward"`
}
