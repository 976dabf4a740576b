package entity

// Landmark is a named point of interest.
type Landmark struct {
	Name        string
	X, Y        int
	Description string
}
