package types

// StateSnapshot:
//   version: number
//   state:
//     code: string
//     draft_order: string[]         // permutation of player display names
//     turn: number                  // monotonically increasing counter
//     snake: boolean
//     active: string                // display name; omitted while roster is empty
//     players: { name, email, room_code, created_at }[]  // join order
//     games: { id, date, time, day, opponent, tier, price, picked_by? }[]
