package protocol

//input structs coming in from the client.

type Hello struct {
	V    int    `json:"v"`              // version
	Name string `json:"name,omitempty"` // optional name
}

type Input struct {
	Ax float64 `json:"ax"` // -1..1 movement X
	Ay float64 `json:"ay"` // -1..1 movement Y
}

type Upgrade struct {
	Weapon string `json:"weapon"`
}

type Reset struct{}

type Pause struct {
	On bool `json:"on"`
}
