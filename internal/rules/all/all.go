// Package all imports all rule packages to register them.
// Import this package with a blank identifier to enable all rules:
//
//	import _ "github.com/linewatch/linewatch/internal/rules/all"
package all

import (
	// Import all rule packages to trigger their init() registration
	_ "github.com/linewatch/linewatch/internal/rules/importblock"
	_ "github.com/linewatch/linewatch/internal/rules/linewidth"
)
