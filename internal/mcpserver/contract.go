package mcpserver

// CategoryLegend describes the spot categories that LLM consumers
// should use when filtering spots or creating content about them.
const CategoryLegend = `# Roll'n'Connect Spot Categories

Spots are classified with exactly one category. Filters accept a
comma-separated list of machine names; categories combine with OR, and
an empty filter matches every spot.

| Machine name | Display label |
|---|---|
| water | Water |
| medical | Medical Supplies |
| food | Food |
| paved_trail | Paved Trails |
| parking_deck | Parking Decks |
| parking_lot | Parking Lots |
| skating_rink | Skating Rinks |

## Rules

1. Machine names are lowercase snake_case. Unknown names in a filter
   are ignored, never an error.
2. A filter that ends up empty after dropping unknown names matches
   all spots.
3. Display labels are for presentation only; the API and tools always
   take machine names.
`
