package bot

const msgDefaultError = "Something went wrong, please try again."
