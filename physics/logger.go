// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "github.com/dyn3/engine/util/logger"

var log = logger.New("PHYSICS", logger.Default)
