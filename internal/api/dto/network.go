package dto

type StopResponse struct {
	StopID int     `json:"stop_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type OrderResponse struct {
	OrderID   int     `json:"order_id"`
	StopID    int     `json:"stop_id"`
	WaitTime  float64 `json:"wait_time"`
	TimeLimit float64 `json:"time_limit"`
}

type NetworkResponse struct {
	DepotStopID int             `json:"depot_stop_id"`
	Stops       []StopResponse  `json:"stops"`
	Orders      []OrderResponse `json:"orders"`
}
