// Package recipe loads the recipe list and the recipe-to-config mapping.
//
// A recipe list is an ordered plain-text file with one recipe identifier
// per line. The mapping is a YAML file assigning each recipe a Fleet team
// and self-service flag, with a defaults block for recipes without an
// entry. Resolution is per-field: a recipe override wins over the defaults
// block, which wins over the hardcoded fallbacks.
//
// Example usage:
//
//	m, err := recipe.LoadMap("config/recipe-map.yml")
//	if err != nil {
//	    return err
//	}
//
//	cfg := m.Resolve("Firefox")
//	fmt.Println(cfg.TeamID, cfg.SelfService)
package recipe
