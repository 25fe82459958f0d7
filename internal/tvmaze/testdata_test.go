package tvmaze

const showWithEpisodes = `{
  "id": 107,
  "url": "https://www.tvmaze.com/shows/107/bobs-burgers",
  "name": "Bob's Burgers",
  "language": "English",
  "premiered": "2011-01-09",
  "_embedded": {
    "episodes": [
      {"id": 10001, "url": "https://www.tvmaze.com/episodes/10001/bobs-burgers-1x01-human-flesh", "name": "Human Flesh", "season": 1, "number": 1, "airdate": "2011-01-09"},
      {"id": 10002, "url": "https://www.tvmaze.com/episodes/10002/bobs-burgers-1x02-crawl-space", "name": "Crawl Space", "season": 1, "number": 2, "airdate": "2011-01-16"},
      {"id": 10099, "url": "https://www.tvmaze.com/episodes/10099/bobs-burgers-special", "name": "Behind the Burgers", "season": null, "number": null, "type": "insignificant_special"}
    ]
  }
}`

const showWithoutEpisodes = `{
  "id": 107,
  "url": "https://www.tvmaze.com/shows/107/bobs-burgers",
  "name": "Bob's Burgers"
}`

const episodeList = `[
  {"id": 10001, "url": "https://www.tvmaze.com/episodes/10001/bobs-burgers-1x01-human-flesh", "name": "Human Flesh", "season": 1, "number": 1},
  {"id": 10003, "url": "https://www.tvmaze.com/episodes/10003/bobs-burgers-1x03-sacred-cow", "name": "Sacred Cow", "season": 1, "number": 3}
]`
