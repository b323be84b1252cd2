package branch

// HeadquartersID is the branch whose users see every branch's data.
const HeadquartersID = "HQ"

type Branch struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Currency    string       `json:"currency"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Coordinates is the geofence centre and allowed radius in meters.
type Coordinates struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius float64 `json:"radius"`
}

func (b Branch) IsHeadquarters() bool {
	return b.ID == HeadquartersID
}

// InScope reports whether a record owned by branchID is visible to a caller
// scoped to scope. The empty scope and HQ see everything.
func InScope(scope, branchID string) bool {
	return scope == "" || scope == HeadquartersID || scope == branchID
}

// ResolveTarget picks the branch a new record is filed under: the requested
// branch, or the first operational branch when the caller works from HQ.
func ResolveTarget(scope string, branches []Branch) (string, error) {
	if scope != "" && scope != HeadquartersID {
		for _, b := range branches {
			if b.ID == scope {
				return scope, nil
			}
		}
		return "", ErrBranchNotFound
	}
	for _, b := range branches {
		if !b.IsHeadquarters() {
			return b.ID, nil
		}
	}
	if len(branches) > 0 {
		return branches[0].ID, nil
	}
	return "", ErrBranchNotFound
}

func FindByID(branches []Branch, id string) (Branch, bool) {
	for _, b := range branches {
		if b.ID == id {
			return b, true
		}
	}
	return Branch{}, false
}
