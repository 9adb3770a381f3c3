// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

// Repository reads the category reference list.
type Repository interface {
	// List returns every category ordered by kind, then display order.
	List(context context.Context) ([]Category, error)
}
