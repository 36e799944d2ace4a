package mysql

const insertHotelsPrefix = "INSERT INTO hotels\n  (id, name, address, city, state, lat, lng)\nVALUES "

const insertHotelsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  name    = VALUES(name),\n" +
	"  address = VALUES(address),\n" +
	"  city    = VALUES(city),\n" +
	"  state   = VALUES(state),\n" +
	"  lat     = VALUES(lat),\n" +
	"  lng     = VALUES(lng)\n"

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewsPrefix = "INSERT INTO reviews\n  (review_id, hotel_id, rating, title, `text`, nickname, submitted_at)\nVALUES "

// COALESCE keeps the old value if the new one is NULL.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  hotel_id     = VALUES(hotel_id),\n" +
	"  rating       = VALUES(rating),\n" +
	"  title        = COALESCE(VALUES(title), reviews.title),\n" +
	"  `text`       = VALUES(`text`),\n" +
	"  nickname     = VALUES(nickname),\n" +
	"  submitted_at = COALESCE(VALUES(submitted_at), reviews.submitted_at)\n"

const likeCountsPrefix = "SELECT review_id, COUNT(*) FROM review_likes WHERE review_id IN ("

const likeCountsSuffix = ") GROUP BY review_id"
