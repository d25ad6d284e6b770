package dispatch

// Tutorial is printed by the help command.
const Tutorial = `fc-archive searches a local Fine Cooking archive.

Commands:
  fc-archive search text <term>       find pages whose text contains <term>
  fc-archive search articles <term>   find recipe articles by headline, subhead or abstract
                                      (aliases: recipes, a)
  fc-archive prevalence <term>        count matching pages per issue, most first
  fc-archive random                   suggest one random article
  fc-archive help                     show this tutorial

Matching is a case-insensitive substring match on a single word: only the
first word of <term> is used. Text search results show the match between
*asterisks* with up to 40 characters of context on each side.

Options:
  --database_path <path>   archive database (FC.db)
  --issues_dir <path>      directory holding the issue PDFs
  --format table|json|yaml output format (default table)
  --config <file>          config file (default ./fc-archive.yaml or ~/.config/fc-archive/fc-archive.yaml)

Examples:
  fc-archive search text saffron
  fc-archive search recipes risotto
  fc-archive prevalence kale
`
