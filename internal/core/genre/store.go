// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import "context"

// Repository reads the genre reference list.
type Repository interface {
	// List returns every genre ordered by name.
	List(context context.Context) ([]Genre, error)
}
